package session

import (
	"github.com/duynd-cmd/ai-mentor/internal/collections"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// AddNote prepends a note (most-recent-first ordering)
func (m *Manager) AddNote(email string, note models.Note) ([]models.Note, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = collections.PrependNote(s.notes, note)
	if err := m.router.PersistCollection(email, "notes", s.notes); err != nil {
		return nil, err
	}
	return append([]models.Note(nil), s.notes...), nil
}

// UpdateNote replaces a note's content and stamps lastEdited
func (m *Manager) UpdateNote(email, id, content string) ([]models.Note, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = collections.UpdateNoteContent(s.notes, id, content)
	if err := m.router.PersistCollection(email, "notes", s.notes); err != nil {
		return nil, err
	}
	return append([]models.Note(nil), s.notes...), nil
}

// DeleteNote removes a note by id
func (m *Manager) DeleteNote(email, id string) ([]models.Note, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = collections.DeleteNote(s.notes, id)
	if err := m.router.PersistCollection(email, "notes", s.notes); err != nil {
		return nil, err
	}
	return append([]models.Note(nil), s.notes...), nil
}

// AddChatSession prepends a document-chat session
func (m *Manager) AddChatSession(email string, chat models.ChatSession) ([]models.ChatSession, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chatSessions = collections.PrependChatSession(s.chatSessions, chat)
	if err := m.router.PersistCollection(email, "chatSessions", s.chatSessions); err != nil {
		return nil, err
	}
	return append([]models.ChatSession(nil), s.chatSessions...), nil
}

// UpdateChatSession applies a partial update and stamps lastUpdated
func (m *Manager) UpdateChatSession(email, id string, patch collections.ChatSessionPatch) ([]models.ChatSession, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chatSessions = collections.UpdateChatSession(s.chatSessions, id, patch)
	if err := m.router.PersistCollection(email, "chatSessions", s.chatSessions); err != nil {
		return nil, err
	}
	return append([]models.ChatSession(nil), s.chatSessions...), nil
}

// DeleteChatSession removes a session by id
func (m *Manager) DeleteChatSession(email, id string) ([]models.ChatSession, error) {
	s, err := m.get(email)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chatSessions = collections.DeleteChatSession(s.chatSessions, id)
	if err := m.router.PersistCollection(email, "chatSessions", s.chatSessions); err != nil {
		return nil, err
	}
	return append([]models.ChatSession(nil), s.chatSessions...), nil
}

// SaveResource adds a resource to the saved set, deduplicated by id. The
// saved set lives inside the progress record and persists with it.
func (m *Manager) SaveResource(email string, resource models.Resource) (models.UserMemory, error) {
	s, err := m.get(email)
	if err != nil {
		return models.UserMemory{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = collections.SaveResource(s.memory, resource)
	if err := m.persistMemoryLocked(s, nil); err != nil {
		return models.UserMemory{}, err
	}
	return s.memory, nil
}

// RemoveResource drops a saved resource by id; unknown ids are a no-op
func (m *Manager) RemoveResource(email, resourceID string) (models.UserMemory, error) {
	s, err := m.get(email)
	if err != nil {
		return models.UserMemory{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = collections.RemoveResource(s.memory, resourceID)
	if err := m.persistMemoryLocked(s, nil); err != nil {
		return models.UserMemory{}, err
	}
	return s.memory, nil
}
