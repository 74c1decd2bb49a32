package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := OpenLocal(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testAccount() *models.LocalAccount {
	return &models.LocalAccount{
		Email:    "an@example.com",
		Password: "hashed",
		Name:     "An",
		Memory: models.UserMemory{
			Name:           "An",
			Grade:          "Lớp 10",
			XP:             120,
			Level:          2,
			UnlockedBadges: []string{"Học viên Mới"},
			SavedResources: []models.Resource{{ID: "r1", Title: "Video", Type: "video", URL: "https://example.com"}},
		},
		Notes:        []models.Note{{ID: "n1", Title: "Ghi chú", Content: "nội dung"}},
		ChatSessions: []models.ChatSession{{ID: "s1", Title: "Tài liệu", Messages: []models.ChatMessage{}}},
	}
}

func TestAccountRoundTrip(t *testing.T) {
	store := openTestStore(t)
	account := testAccount()

	require.NoError(t, store.CreateAccount(account))

	loaded, err := store.GetAccount(account.Email)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, account.Password, loaded.Password)
	assert.Equal(t, account.Memory, loaded.Memory)
	assert.Equal(t, account.Notes, loaded.Notes)
	assert.Equal(t, account.ChatSessions, loaded.ChatSessions)
	assert.Nil(t, loaded.ActivePlan)
}

func TestGetAccountUnknownEmail(t *testing.T) {
	store := openTestStore(t)

	account, err := store.GetAccount("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestSaveMemoryUpsertsRow(t *testing.T) {
	store := openTestStore(t)

	// No prior row: the mirror write creates one (cloud login on a
	// fresh device).
	mem := models.UserMemory{Name: "An", XP: 40, Level: 1}
	require.NoError(t, store.SaveMemory("an@example.com", mem))

	loaded, err := store.GetAccount("an@example.com")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, mem, loaded.Memory)
	assert.Empty(t, loaded.Password)

	// Second write replaces the memory, leaves the rest alone
	mem.XP = 90
	require.NoError(t, store.SaveMemory("an@example.com", mem))
	loaded, err = store.GetAccount("an@example.com")
	require.NoError(t, err)
	assert.Equal(t, 90, loaded.Memory.XP)
}

func TestSaveCollection(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateAccount(testAccount()))

	plan := &models.StudyPlan{
		ID:      "p1",
		Subject: "Toán",
		Weeks: []models.WeekPlan{
			{Week: 1, Days: []models.DayPlan{{Day: 1, Tasks: []models.Task{{ID: "t1", Description: "Ôn tập"}}}}},
		},
	}
	require.NoError(t, store.SaveCollection("an@example.com", "activePlan", plan))

	loaded, err := store.GetAccount("an@example.com")
	require.NoError(t, err)
	require.NotNil(t, loaded.ActivePlan)
	assert.Equal(t, plan, loaded.ActivePlan)

	// Clearing the plan stores an empty value
	require.NoError(t, store.SaveCollection("an@example.com", "activePlan", nil))
	loaded, err = store.GetAccount("an@example.com")
	require.NoError(t, err)
	assert.Nil(t, loaded.ActivePlan)

	// Unknown collection names are rejected
	err = store.SaveCollection("an@example.com", "favorites", []string{})
	assert.Error(t, err)
}

func TestTelegramLinkAndReminderScan(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateAccount(testAccount()))

	accounts, err := store.AccountsWithReminders()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, store.SetTelegramChat("an@example.com", 12345))
	accounts, err = store.AccountsWithReminders()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(12345), accounts[0].TelegramChatID)

	// Unlink
	require.NoError(t, store.SetTelegramChat("an@example.com", 0))
	accounts, err = store.AccountsWithReminders()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestRouterPersistLocalOnly(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateAccount(testAccount()))

	router := NewRouter(store, nil)
	assert.False(t, router.Online())

	require.NoError(t, router.Persist("an@example.com", map[string]interface{}{"xp": 500, "level": 6}))

	loaded, err := store.GetAccount("an@example.com")
	require.NoError(t, err)
	assert.Equal(t, 500, loaded.Memory.XP)
	assert.Equal(t, 6, loaded.Memory.Level)
	// Fields absent from the update survive the merge
	assert.Equal(t, "Lớp 10", loaded.Memory.Grade)
	assert.Len(t, loaded.Memory.SavedResources, 1)
}
