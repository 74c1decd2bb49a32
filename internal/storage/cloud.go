package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// CloudStore is the remote PostgreSQL store. It carries only the progress
// record per email; credentials and collections never leave the device.
type CloudStore struct {
	db *sqlx.DB
}

// OpenCloud connects to the cloud database and ensures the schema exists.
// A failure here means the process runs local-only for its lifetime.
func OpenCloud(databaseURL string) (*CloudStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cloud database: %v", err)
	}

	s := &CloudStore{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *CloudStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *CloudStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS mind_mentor_users (
			email TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			memory JSONB NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create mind_mentor_users table: %v", err)
	}
	return nil
}

// Exists reports whether an email is already registered in the cloud
func (s *CloudStore) Exists(email string) (bool, error) {
	var found string
	err := s.db.QueryRow("SELECT email FROM mind_mentor_users WHERE email = $1", email).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check cloud account: %v", err)
	}
	return true, nil
}

// GetRecord returns the cloud progress record for an email, or nil if the
// email is unknown.
func (s *CloudStore) GetRecord(email string) (*models.CloudRecord, error) {
	var record models.CloudRecord
	err := s.db.QueryRow(
		"SELECT email, name, memory, updated_at FROM mind_mentor_users WHERE email = $1",
		email,
	).Scan(&record.Email, &record.Name, &record.Memory, &record.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cloud record: %v", err)
	}
	return &record, nil
}

// Insert registers a fresh account with its zero-initialized memory
func (s *CloudStore) Insert(email, name string, mem models.UserMemory) error {
	memoryJSON, err := json.Marshal(mem)
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %v", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO mind_mentor_users (email, name, memory) VALUES ($1, $2, $3)",
		email, name, memoryJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cloud record: %v", err)
	}
	return nil
}

// UpsertMemory writes a merged progress record back, refreshing
// updated_at. Last write wins across concurrent upserts.
func (s *CloudStore) UpsertMemory(email, name string, memoryJSON []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO mind_mentor_users (email, name, memory, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			memory = EXCLUDED.memory,
			updated_at = NOW()
	`, email, name, memoryJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert cloud record: %v", err)
	}
	return nil
}
