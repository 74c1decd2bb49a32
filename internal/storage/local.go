package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// LocalStore is the on-device SQLite store. It holds the full account
// bundle per email: credentials, progress record and the local-first
// collections (notes, chat sessions, active plan).
type LocalStore struct {
	db *sqlx.DB
}

// collectionColumns maps collection names accepted by SaveCollection to
// their backing columns. Anything else is rejected.
var collectionColumns = map[string]string{
	"notes":        "notes",
	"chatSessions": "chat_sessions",
	"activePlan":   "active_plan",
}

// OpenLocal opens (creating if necessary) the SQLite file at path
func OpenLocal(path string) (*LocalStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &LocalStore{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func (s *LocalStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			email TEXT PRIMARY KEY,
			password TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			memory TEXT NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT '[]',
			chat_sessions TEXT NOT NULL DEFAULT '[]',
			active_plan TEXT NOT NULL DEFAULT '',
			telegram_chat_id INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}
	return nil
}

// GetAccount returns the stored bundle for an email, or nil if the email
// is unknown.
func (s *LocalStore) GetAccount(email string) (*models.LocalAccount, error) {
	var (
		password, name, memoryJSON, notesJSON, sessionsJSON, planJSON string
		chatID                                                        int64
	)
	err := s.db.QueryRow(
		"SELECT password, name, memory, notes, chat_sessions, active_plan, telegram_chat_id FROM users WHERE email = ?",
		email,
	).Scan(&password, &name, &memoryJSON, &notesJSON, &sessionsJSON, &planJSON, &chatID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}

	account := models.LocalAccount{
		Email:          email,
		Password:       password,
		Name:           name,
		TelegramChatID: chatID,
	}
	if err := json.Unmarshal([]byte(memoryJSON), &account.Memory); err != nil {
		return nil, fmt.Errorf("failed to parse stored memory: %v", err)
	}
	if err := json.Unmarshal([]byte(notesJSON), &account.Notes); err != nil {
		return nil, fmt.Errorf("failed to parse stored notes: %v", err)
	}
	if err := json.Unmarshal([]byte(sessionsJSON), &account.ChatSessions); err != nil {
		return nil, fmt.Errorf("failed to parse stored chat sessions: %v", err)
	}
	if planJSON != "" {
		if err := json.Unmarshal([]byte(planJSON), &account.ActivePlan); err != nil {
			return nil, fmt.Errorf("failed to parse stored plan: %v", err)
		}
	}
	return &account, nil
}

// CreateAccount inserts a new bundle. The caller is responsible for the
// email-taken check against the authoritative backend.
func (s *LocalStore) CreateAccount(account *models.LocalAccount) error {
	memoryJSON, err := json.Marshal(account.Memory)
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %v", err)
	}
	notesJSON, err := json.Marshal(account.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %v", err)
	}
	sessionsJSON, err := json.Marshal(account.ChatSessions)
	if err != nil {
		return fmt.Errorf("failed to marshal chat sessions: %v", err)
	}
	planJSON := ""
	if account.ActivePlan != nil {
		raw, err := json.Marshal(account.ActivePlan)
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %v", err)
		}
		planJSON = string(raw)
	}

	_, err = s.db.Exec(`
		INSERT INTO users (email, password, name, memory, notes, chat_sessions, active_plan, telegram_chat_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			password = excluded.password,
			name = excluded.name,
			memory = excluded.memory,
			notes = excluded.notes,
			chat_sessions = excluded.chat_sessions,
			active_plan = excluded.active_plan,
			updated_at = CURRENT_TIMESTAMP
	`,
		account.Email,
		account.Password,
		account.Name,
		string(memoryJSON),
		string(notesJSON),
		string(sessionsJSON),
		planJSON,
		account.TelegramChatID,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %v", err)
	}
	return nil
}

// SaveMemory mirrors the latest observed progress record for an email.
// The row is created if it does not exist yet, which happens after a
// cloud login on a device that has never seen the account.
func (s *LocalStore) SaveMemory(email string, mem models.UserMemory) error {
	memoryJSON, err := json.Marshal(mem)
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %v", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO users (email, name, memory)
		VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			memory = excluded.memory,
			updated_at = CURRENT_TIMESTAMP
	`, email, mem.Name, string(memoryJSON))
	if err != nil {
		return fmt.Errorf("failed to save memory: %v", err)
	}
	return nil
}

// SaveCollection stores one of the local-first collections. The name must
// be one of "notes", "chatSessions" or "activePlan".
func (s *LocalStore) SaveCollection(email, name string, value interface{}) error {
	column, ok := collectionColumns[name]
	if !ok {
		return fmt.Errorf("unknown collection: %s", name)
	}

	raw := ""
	if value != nil {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %v", name, err)
		}
		raw = string(encoded)
	}
	// "null" means an explicitly cleared plan; store it as empty
	if raw == "null" {
		raw = ""
	}

	query := fmt.Sprintf(`
		INSERT INTO users (email, %[1]s)
		VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET
			%[1]s = excluded.%[1]s,
			updated_at = CURRENT_TIMESTAMP
	`, column)
	if _, err := s.db.Exec(query, email, raw); err != nil {
		return fmt.Errorf("failed to save %s: %v", name, err)
	}
	return nil
}

// SetTelegramChat links (or with 0, unlinks) a Telegram chat used for
// study reminders.
func (s *LocalStore) SetTelegramChat(email string, chatID int64) error {
	_, err := s.db.Exec(
		"UPDATE users SET telegram_chat_id = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?",
		chatID, email,
	)
	if err != nil {
		return fmt.Errorf("failed to set telegram chat: %v", err)
	}
	return nil
}

// AccountsWithReminders returns every account that linked a Telegram chat
func (s *LocalStore) AccountsWithReminders() ([]models.LocalAccount, error) {
	rows, err := s.db.Query("SELECT email FROM users WHERE telegram_chat_id != 0")
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder accounts: %v", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan email: %v", err)
		}
		emails = append(emails, email)
	}

	var accounts []models.LocalAccount
	for _, email := range emails {
		account, err := s.GetAccount(email)
		if err != nil {
			return nil, err
		}
		if account != nil {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}
