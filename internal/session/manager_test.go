package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynd-cmd/ai-mentor/internal/collections"
	"github.com/duynd-cmd/ai-mentor/internal/storage"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// newTestManager runs in local-only mode over a temporary SQLite file
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	local, err := storage.OpenLocal(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return NewManager(storage.NewRouter(local, nil))
}

func TestSignupZeroInitialized(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))
	assert.True(t, m.Authenticated("an@example.com"))

	state, err := m.Snapshot("an@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Memory.XP)
	assert.Equal(t, 1, state.Memory.Level)
	assert.Equal(t, []string{"Học viên Mới"}, state.Memory.UnlockedBadges)
	assert.Empty(t, state.Notes)
	assert.Empty(t, state.ChatSessions)
	assert.Nil(t, state.ActivePlan)
}

func TestSignupEmailTaken(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))
	err := m.Signup("an@example.com", "other", "Bình")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPasswordLeavesStateUntouched(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))
	m.Logout("an@example.com")

	err := m.Login("an@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, m.Authenticated("an@example.com"))

	_, err = m.Snapshot("an@example.com")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoginUnknownEmail(t *testing.T) {
	m := newTestManager(t)
	err := m.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutKeepsStoredRecords(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	_, err := m.UpdateMemory("an@example.com", map[string]interface{}{"grade": "Lớp 11"})
	require.NoError(t, err)

	m.Logout("an@example.com")
	assert.False(t, m.Authenticated("an@example.com"))

	// A fresh login restores the persisted state
	require.NoError(t, m.Login("an@example.com", "secret123"))
	state, err := m.Snapshot("an@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Lớp 11", state.Memory.Grade)
}

func TestProgressSurvivesRelogin(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	plan := &models.StudyPlan{
		ID:      "p1",
		Subject: "Lý",
		Weeks: []models.WeekPlan{
			{Week: 1, Days: []models.DayPlan{{Day: 1, Tasks: []models.Task{{ID: "t1", Description: "Ôn tập"}}}}},
		},
	}
	require.NoError(t, m.SetActivePlan("an@example.com", plan))

	correct := true
	state, err := m.CompleteTask("an@example.com", 0, 0, "t1", 120, &correct)
	require.NoError(t, err)
	assert.Equal(t, 120, state.Memory.XP)
	assert.Equal(t, 2, state.Memory.Level)
	assert.True(t, state.ActivePlan.Weeks[0].Days[0].Tasks[0].Completed)

	m.Logout("an@example.com")
	require.NoError(t, m.Login("an@example.com", "secret123"))

	state, err = m.Snapshot("an@example.com")
	require.NoError(t, err)
	assert.Equal(t, 120, state.Memory.XP)
	assert.Equal(t, 1, state.Memory.QuestionsAnswered)
	assert.Equal(t, 1, state.Memory.QuestionsCorrect)
	require.NotNil(t, state.ActivePlan)
	assert.True(t, state.ActivePlan.Weeks[0].Days[0].Tasks[0].Completed)
}

func TestCompleteTaskNoOpWithoutPlan(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	state, err := m.CompleteTask("an@example.com", 0, 0, "t1", 50, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Memory.XP)
}

func TestUpdateMemoryKeepsLevelDerived(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	// A patch can never push level out of sync with xp
	mem, err := m.UpdateMemory("an@example.com", map[string]interface{}{"name": "An Nguyễn"})
	require.NoError(t, err)
	assert.Equal(t, "An Nguyễn", mem.Name)
	assert.Equal(t, 1, mem.Level)
	assert.Equal(t, 0, mem.XP)
}

func TestResourceSaveAndRemove(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	r := models.Resource{ID: "r1", Title: "Video", Type: "video", URL: "https://example.com"}
	mem, err := m.SaveResource("an@example.com", r)
	require.NoError(t, err)
	mem, err = m.SaveResource("an@example.com", r)
	require.NoError(t, err)
	require.Len(t, mem.SavedResources, 1)

	// Removing an absent id changes nothing
	mem, err = m.RemoveResource("an@example.com", "missing")
	require.NoError(t, err)
	assert.Len(t, mem.SavedResources, 1)

	mem, err = m.RemoveResource("an@example.com", "r1")
	require.NoError(t, err)
	assert.Empty(t, mem.SavedResources)
}

func TestNotesAndChatsPersist(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Signup("an@example.com", "secret123", "An"))

	_, err := m.AddNote("an@example.com", models.Note{ID: "n1", Title: "Hóa", Content: "phương trình"})
	require.NoError(t, err)
	_, err = m.AddNote("an@example.com", models.Note{ID: "n2", Title: "Sử"})
	require.NoError(t, err)

	_, err = m.AddChatSession("an@example.com", models.ChatSession{ID: "s1", Title: "SGK", Messages: []models.ChatMessage{}})
	require.NoError(t, err)
	_, err = m.UpdateChatSession("an@example.com", "s1", collections.ChatSessionPatch{
		AppendMessages: []models.ChatMessage{{ID: "m1", Role: "user", Text: "?"}},
	})
	require.NoError(t, err)

	m.Logout("an@example.com")
	require.NoError(t, m.Login("an@example.com", "secret123"))

	state, err := m.Snapshot("an@example.com")
	require.NoError(t, err)
	require.Len(t, state.Notes, 2)
	assert.Equal(t, "n2", state.Notes[0].ID) // most recent first
	require.Len(t, state.ChatSessions, 1)
	assert.Len(t, state.ChatSessions[0].Messages, 1)

	notes, err := m.DeleteNote("an@example.com", "n1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
