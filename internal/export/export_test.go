package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

func sampleData() (models.UserMemory, *models.StudyPlan) {
	mem := models.UserMemory{
		Name:           "An",
		Grade:          "Lớp 10",
		XP:             120,
		Level:          2,
		UnlockedBadges: []string{"Học viên Mới"},
	}
	plan := &models.StudyPlan{
		ID:      "p1",
		Subject: "Toán",
		Weeks: []models.WeekPlan{
			{Week: 1, Days: []models.DayPlan{
				{Day: 1, Tasks: []models.Task{
					{ID: "t1", Description: "Ôn tập chương 1", Completed: true},
					{ID: "t2", Description: "Làm bài tập"},
				}},
			}},
		},
	}
	return mem, plan
}

func TestBuildWorkbook(t *testing.T) {
	mem, plan := sampleData()

	f, err := BuildWorkbook("an@example.com", mem, plan)
	require.NoError(t, err)
	defer f.Close()

	email, err := f.GetCellValue(overviewSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", email)

	xp, err := f.GetCellValue(overviewSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "120", xp)

	task, err := f.GetCellValue(planSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ôn tập chương 1", task)

	done, err := f.GetCellValue(planSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Đã xong", done)
}

func TestBuildWorkbookWithoutPlan(t *testing.T) {
	mem, _ := sampleData()

	f, err := BuildWorkbook("an@example.com", mem, nil)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.GetSheetIndex(planSheet)
	// Sheet lookup works either way; the workbook simply has one sheet
	assert.Len(t, f.GetSheetList(), 1)
	require.NoError(t, err)
}

func TestWriteCSV(t *testing.T) {
	mem, plan := sampleData()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "an@example.com", mem, plan))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "email,name,grade,xp,level\n"))
	assert.Contains(t, out, "an@example.com,An,Lớp 10,120,2")
	assert.Contains(t, out, "1,1,Ôn tập chương 1,true")
	assert.Contains(t, out, "1,1,Làm bài tập,false")
}
