package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/duynd-cmd/ai-mentor/internal/progress"
	"github.com/duynd-cmd/ai-mentor/internal/storage"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

var (
	// ErrEmailTaken is returned by Signup when the email already exists
	// in the authoritative backend.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned by Login on any failed lookup or
	// password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession is returned when an operation addresses an email that
	// is not currently authenticated.
	ErrNoSession = errors.New("no active session for this user")
)

// State is a point-in-time snapshot of an authenticated user's data,
// safe for handlers to serialize without holding any lock.
type State struct {
	Email        string               `json:"email"`
	Memory       models.UserMemory    `json:"memory"`
	Notes        []models.Note        `json:"notes"`
	ChatSessions []models.ChatSession `json:"chatSessions"`
	ActivePlan   *models.StudyPlan    `json:"activePlan"`
}

// userSession is the mutable in-memory state for one authenticated user.
// All mutations happen under mu and are persisted before it is released,
// so writes for one user serialize naturally.
type userSession struct {
	mu           sync.Mutex
	email        string
	memory       models.UserMemory
	notes        []models.Note
	chatSessions []models.ChatSession
	activePlan   *models.StudyPlan
}

// Manager owns the authenticated identities and routes every mutation
// through the storage router under the owning email.
type Manager struct {
	router *storage.Router

	mu       sync.RWMutex
	sessions map[string]*userSession
}

// NewManager creates a session manager over a storage router
func NewManager(router *storage.Router) *Manager {
	return &Manager{
		router:   router,
		sessions: make(map[string]*userSession),
	}
}

// Online reports whether the cloud backend is in use
func (m *Manager) Online() bool {
	return m.router.Online()
}

// Signup registers a new account with a zero-initialized progress record
// and authenticates it. The email-taken check runs against the cloud when
// online, the local store otherwise.
func (m *Manager) Signup(email, password, name string) error {
	if m.router.Online() {
		exists, err := m.router.Cloud().Exists(email)
		if err != nil {
			return fmt.Errorf("failed to check cloud account: %v", err)
		}
		if exists {
			return ErrEmailTaken
		}
	} else {
		account, err := m.router.Local().GetAccount(email)
		if err != nil {
			return err
		}
		if account != nil {
			return ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	mem := progress.NewUserMemory(name)
	account := &models.LocalAccount{
		Email:        email,
		Password:     string(hash),
		Name:         name,
		Memory:       mem,
		Notes:        []models.Note{},
		ChatSessions: []models.ChatSession{},
	}
	// The local bundle is written in both modes: offline it is the store
	// of record, online it is the cache.
	if err := m.router.Local().CreateAccount(account); err != nil {
		return err
	}
	if m.router.Online() {
		if err := m.router.Cloud().Insert(email, name, mem); err != nil {
			return err
		}
	}

	m.attach(&userSession{
		email:        email,
		memory:       mem,
		notes:        []models.Note{},
		chatSessions: []models.ChatSession{},
	})
	return nil
}

// Login authenticates an existing account. When online the cloud record
// is checked first; if the email exists there the login succeeds without
// a password check (see the warning below), loading collections from the
// local cache when present. Otherwise, and always when offline, the local
// bundle is loaded after a bcrypt password match. On failure no session
// state changes.
func (m *Manager) Login(email, password string) error {
	if m.router.Online() {
		record, err := m.router.Cloud().GetRecord(email)
		if err != nil {
			return fmt.Errorf("failed to look up cloud account: %v", err)
		}
		if record != nil {
			// Carried over from the original system: the cloud path
			// trusts the existence of the email record and does NOT
			// verify the password.
			log.Printf("WARNING: cloud login for %s without password verification", email)

			mem := progress.NewUserMemory(record.Name)
			if len(record.Memory) > 0 {
				if err := json.Unmarshal(record.Memory, &mem); err != nil {
					return fmt.Errorf("failed to parse cloud memory: %v", err)
				}
			}

			s := &userSession{
				email:        email,
				memory:       mem,
				notes:        []models.Note{},
				chatSessions: []models.ChatSession{},
			}
			cached, err := m.router.Local().GetAccount(email)
			if err != nil {
				return err
			}
			if cached != nil {
				s.notes = cached.Notes
				s.chatSessions = cached.ChatSessions
				s.activePlan = cached.ActivePlan
			}
			m.attach(s)
			return nil
		}
		// Not in the cloud: fall through to the local lookup.
	}

	account, err := m.router.Local().GetAccount(email)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}

	m.attach(&userSession{
		email:        email,
		memory:       account.Memory,
		notes:        account.Notes,
		chatSessions: account.ChatSessions,
		activePlan:   account.ActivePlan,
	})
	return nil
}

// Logout clears the in-memory session. Stored records are untouched.
func (m *Manager) Logout(email string) {
	m.mu.Lock()
	delete(m.sessions, email)
	m.mu.Unlock()
}

// Authenticated reports whether an email currently holds a session
func (m *Manager) Authenticated(email string) bool {
	m.mu.RLock()
	_, ok := m.sessions[email]
	m.mu.RUnlock()
	return ok
}

// Snapshot returns a copy of the session state for an email
func (m *Manager) Snapshot(email string) (*State, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (m *Manager) attach(s *userSession) {
	m.mu.Lock()
	m.sessions[s.email] = s
	m.mu.Unlock()
}

func (m *Manager) get(email string) (*userSession, error) {
	m.mu.RLock()
	s, ok := m.sessions[email]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

func (s *userSession) snapshotLocked() *State {
	return &State{
		Email:        s.email,
		Memory:       s.memory,
		Notes:        append([]models.Note(nil), s.notes...),
		ChatSessions: append([]models.ChatSession(nil), s.chatSessions...),
		ActivePlan:   s.activePlan,
	}
}

// persistMemoryLocked writes the session's progress record through the
// router. update carries the changed fields; nil means the full record.
func (m *Manager) persistMemoryLocked(s *userSession, update map[string]interface{}) error {
	if update == nil {
		full, err := storage.MemoryToMap(s.memory)
		if err != nil {
			return err
		}
		update = full
	}
	return m.router.Persist(s.email, update)
}

// UpdateMemory applies a partial update to the progress record, e.g. the
// onboarding profile fields. The level is recomputed from XP afterwards
// so it can never drift from the formula.
func (m *Manager) UpdateMemory(email string, update map[string]interface{}) (models.UserMemory, error) {
	s, err := m.get(email)
	if err != nil {
		return models.UserMemory{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	base, err := storage.MemoryToMap(s.memory)
	if err != nil {
		return models.UserMemory{}, err
	}
	mem, err := storage.MemoryFromMap(storage.MergeMemory(base, update))
	if err != nil {
		return models.UserMemory{}, err
	}
	mem.Level = progress.LevelForXP(mem.XP)
	s.memory = mem

	if err := m.persistMemoryLocked(s, update); err != nil {
		return models.UserMemory{}, err
	}
	return s.memory, nil
}

// CompleteTask runs the progress engine for one task completion and
// persists both the plan and the progress record.
func (m *Manager) CompleteTask(email string, weekIndex, dayIndex int, taskID string, xpGained int, isCorrect *bool) (*State, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, mem := progress.CompleteTask(s.activePlan, s.memory, weekIndex, dayIndex, taskID, xpGained, isCorrect)
	if plan == s.activePlan {
		// No-op completion: nothing changed, nothing to persist.
		return s.snapshotLocked(), nil
	}
	s.activePlan = plan
	s.memory = mem

	if err := m.router.PersistCollection(email, "activePlan", plan); err != nil {
		return nil, err
	}
	if err := m.persistMemoryLocked(s, nil); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

// SetActivePlan replaces (or with nil, clears) the active study plan
func (m *Manager) SetActivePlan(email string, plan *models.StudyPlan) error {
	s, err := m.get(email)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activePlan = plan
	return m.router.PersistCollection(email, "activePlan", plan)
}

// RecordPomodoro counts one finished focus session
func (m *Manager) RecordPomodoro(email string, focusMinutes int) (models.UserMemory, error) {
	s, err := m.get(email)
	if err != nil {
		return models.UserMemory{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = progress.RecordPomodoro(s.memory, focusMinutes)
	if err := m.persistMemoryLocked(s, nil); err != nil {
		return models.UserMemory{}, err
	}
	return s.memory, nil
}

// LinkTelegram associates a Telegram chat with the account for study
// reminders. A chat id of 0 unlinks.
func (m *Manager) LinkTelegram(email string, chatID int64) error {
	if _, err := m.get(email); err != nil {
		return err
	}
	return m.router.Local().SetTelegramChat(email, chatID)
}
