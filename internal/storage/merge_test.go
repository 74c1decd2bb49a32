package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

func TestMergeMemoryOverwritesAndPreserves(t *testing.T) {
	base := map[string]interface{}{
		"name":  "An",
		"grade": "Lớp 10",
		"xp":    float64(120),
	}
	update := map[string]interface{}{
		"xp":    float64(150),
		"goals": []interface{}{"Đỗ đại học"},
	}

	merged := MergeMemory(base, update)

	assert.Equal(t, float64(150), merged["xp"])
	assert.Equal(t, "An", merged["name"])
	assert.Equal(t, "Lớp 10", merged["grade"])
	assert.Equal(t, []interface{}{"Đỗ đại học"}, merged["goals"])

	// Inputs untouched
	assert.Equal(t, float64(120), base["xp"])
	_, ok := base["goals"]
	assert.False(t, ok)
}

func TestMemoryMapRoundTrip(t *testing.T) {
	mem := models.UserMemory{
		Name:             "An",
		Grade:            "Lớp 12",
		XP:               250,
		Level:            3,
		PomodoroSessions: 4,
		TotalFocusTime:   100,
		UnlockedBadges:   []string{"Học viên Mới", "Nhà Nghiên cứu Đồng"},
		SavedResources:   []models.Resource{{ID: "r1", Title: "Video", Type: "video", URL: "https://example.com"}},
	}

	m, err := MemoryToMap(mem)
	require.NoError(t, err)

	back, err := MemoryFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, mem, back)
}

func TestMergeThenDecode(t *testing.T) {
	base, err := MemoryToMap(models.UserMemory{Name: "An", XP: 50, Level: 1})
	require.NoError(t, err)

	mem, err := MemoryFromMap(MergeMemory(base, map[string]interface{}{"grade": "Lớp 11"}))
	require.NoError(t, err)

	assert.Equal(t, "An", mem.Name)
	assert.Equal(t, 50, mem.XP)
	assert.Equal(t, "Lớp 11", mem.Grade)
}
