// Package export renders a user's progress and study plan as Excel or
// CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

const (
	overviewSheet = "Tổng quan"
	planSheet     = "Lộ trình"
)

// BuildWorkbook produces an .xlsx workbook with an overview sheet
// (profile, stats, badges) and, when a plan is active, a plan sheet with
// one row per task.
func BuildWorkbook(email string, mem models.UserMemory, plan *models.StudyPlan) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %v", err)
	}

	rows := [][]interface{}{
		{"Email", email},
		{"Tên", mem.Name},
		{"Lớp", mem.Grade},
		{"XP", mem.XP},
		{"Cấp độ", mem.Level},
		{"Phiên Pomodoro", mem.PomodoroSessions},
		{"Tổng thời gian tập trung (phút)", mem.TotalFocusTime},
		{"Câu hỏi đã trả lời", mem.QuestionsAnswered},
		{"Câu hỏi đúng", mem.QuestionsCorrect},
		{"Huy hiệu", strings.Join(mem.UnlockedBadges, ", ")},
		{"Mục tiêu", strings.Join(mem.Goals, ", ")},
		{"Điểm mạnh", strings.Join(mem.Strengths, ", ")},
		{"Điểm yếu", strings.Join(mem.Weaknesses, ", ")},
		{"Môn đã học", strings.Join(mem.SubjectsStudied, ", ")},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write overview row: %v", err)
		}
	}
	if err := f.SetColWidth(overviewSheet, "A", "A", 32); err != nil {
		return nil, fmt.Errorf("failed to set column width: %v", err)
	}
	if err := f.SetColWidth(overviewSheet, "B", "B", 48); err != nil {
		return nil, fmt.Errorf("failed to set column width: %v", err)
	}

	if plan != nil {
		if _, err := f.NewSheet(planSheet); err != nil {
			return nil, fmt.Errorf("failed to create plan sheet: %v", err)
		}
		header := []interface{}{"Tuần", "Ngày", "Nhiệm vụ", "Hoàn thành"}
		if err := f.SetSheetRow(planSheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write plan header: %v", err)
		}
		rowNum := 2
		for _, week := range plan.Weeks {
			for _, day := range week.Days {
				for _, task := range day.Tasks {
					row := []interface{}{week.Week, day.Day, task.Description, completedLabel(task.Completed)}
					cell := fmt.Sprintf("A%d", rowNum)
					if err := f.SetSheetRow(planSheet, cell, &row); err != nil {
						return nil, fmt.Errorf("failed to write plan row: %v", err)
					}
					rowNum++
				}
			}
		}
		if err := f.SetColWidth(planSheet, "C", "C", 64); err != nil {
			return nil, fmt.Errorf("failed to set column width: %v", err)
		}
	}

	return f, nil
}

// WriteCSV streams the plan task list (or just the stats when no plan is
// active) as CSV.
func WriteCSV(w io.Writer, email string, mem models.UserMemory, plan *models.StudyPlan) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"email", "name", "grade", "xp", "level"}); err != nil {
		return fmt.Errorf("failed to write csv header: %v", err)
	}
	if err := cw.Write([]string{
		email, mem.Name, mem.Grade,
		strconv.Itoa(mem.XP), strconv.Itoa(mem.Level),
	}); err != nil {
		return fmt.Errorf("failed to write csv stats: %v", err)
	}

	if plan != nil {
		if err := cw.Write([]string{"week", "day", "task", "completed"}); err != nil {
			return fmt.Errorf("failed to write csv plan header: %v", err)
		}
		for _, week := range plan.Weeks {
			for _, day := range week.Days {
				for _, task := range day.Tasks {
					record := []string{
						strconv.Itoa(week.Week),
						strconv.Itoa(day.Day),
						task.Description,
						strconv.FormatBool(task.Completed),
					}
					if err := cw.Write(record); err != nil {
						return fmt.Errorf("failed to write csv task: %v", err)
					}
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func completedLabel(done bool) string {
	if done {
		return "Đã xong"
	}
	return "Chưa xong"
}
