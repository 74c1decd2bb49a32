package models

import "time"

// LocalAccount is the full per-user bundle kept in the local store.
// The local store is the only place credentials and the local-first
// collections (notes, chat sessions, active plan) live.
type LocalAccount struct {
	Email          string        `json:"email"`
	Password       string        `json:"password"` // bcrypt hash
	Name           string        `json:"name"`
	Memory         UserMemory    `json:"memory"`
	Notes          []Note        `json:"notes"`
	ChatSessions   []ChatSession `json:"chatSessions"`
	ActivePlan     *StudyPlan    `json:"activePlan"`
	TelegramChatID int64         `json:"telegramChatId"`
}

// CloudRecord is the row shape of the cloud progress table. Only the
// progress record is synchronized to the cloud; collections stay local.
type CloudRecord struct {
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Memory    []byte    `db:"memory"` // UserMemory as JSON
	UpdatedAt time.Time `db:"updated_at"`
}
