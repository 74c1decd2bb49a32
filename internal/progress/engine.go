package progress

import (
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

// XPPerLevel is the amount of XP needed to advance one level
const XPPerLevel = 100

// Badges maps an exact level number to the badge unlocked at that level.
// The lookup is keyed by the level a completion lands on, not a range
// check: jumping from level 2 to level 4 in one grant awards nothing.
var Badges = map[int]string{
	1:  "Học viên Mới",
	3:  "Nhà Nghiên cứu Đồng",
	5:  "Học giả Bạc",
	10: "Triết gia Vàng",
	20: "Đại kiện tướng Tri thức",
}

// LevelForXP derives the level from an XP total
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// NewUserMemory returns the zero-initialized progress record for a fresh
// account: level 1, no stats, only the starter badge unlocked.
func NewUserMemory(name string) models.UserMemory {
	return models.UserMemory{
		Name:            name,
		Goals:           []string{},
		Strengths:       []string{},
		Weaknesses:      []string{},
		SubjectsStudied: []string{},
		Level:           1,
		SavedResources:  []models.Resource{},
		UnlockedBadges:  []string{Badges[1]},
	}
}

// CompleteTask marks the addressed task completed and applies the XP,
// level, badge and quiz-stat transitions to the memory. The operation is
// idempotent per task id: if there is no plan, the indices are out of
// range, the task id is unknown, the task is already completed, or the
// XP grant is negative, both inputs are returned unchanged. XP only ever
// grows, so the level can never move backwards.
//
// isCorrect is nil when the task had no quiz attached; non-nil means a
// quiz was taken and its value reports whether the answer was right.
func CompleteTask(plan *models.StudyPlan, mem models.UserMemory, weekIndex, dayIndex int, taskID string, xpGained int, isCorrect *bool) (*models.StudyPlan, models.UserMemory) {
	if plan == nil || xpGained < 0 {
		return plan, mem
	}
	if weekIndex < 0 || weekIndex >= len(plan.Weeks) {
		return plan, mem
	}
	week := plan.Weeks[weekIndex]
	if dayIndex < 0 || dayIndex >= len(week.Days) {
		return plan, mem
	}

	day := week.Days[dayIndex]
	taskIndex := -1
	for i, t := range day.Tasks {
		if t.ID == taskID {
			taskIndex = i
			break
		}
	}
	if taskIndex == -1 {
		return plan, mem
	}
	if day.Tasks[taskIndex].Completed {
		return plan, mem
	}

	// Copy the plan along the mutation path so the input stays untouched
	updated := *plan
	updated.Weeks = append([]models.WeekPlan(nil), plan.Weeks...)
	updated.Weeks[weekIndex].Days = append([]models.DayPlan(nil), week.Days...)
	tasks := append([]models.Task(nil), day.Tasks...)
	tasks[taskIndex].Completed = true
	quizTaken := isCorrect != nil
	tasks[taskIndex].QuizTaken = &quizTaken
	updated.Weeks[weekIndex].Days[dayIndex].Tasks = tasks

	mem.XP += xpGained
	newLevel := LevelForXP(mem.XP)
	if badge, ok := Badges[newLevel]; ok {
		mem.UnlockedBadges = appendBadge(mem.UnlockedBadges, badge)
	}
	mem.Level = newLevel

	if isCorrect != nil {
		mem.QuestionsAnswered++
		if *isCorrect {
			mem.QuestionsCorrect++
		}
	}

	return &updated, mem
}

// RecordPomodoro counts one finished focus session of the given length
func RecordPomodoro(mem models.UserMemory, focusMinutes int) models.UserMemory {
	if focusMinutes < 0 {
		return mem
	}
	mem.PomodoroSessions++
	mem.TotalFocusTime += focusMinutes
	return mem
}

// PendingTasks counts the incomplete tasks remaining in a plan
func PendingTasks(plan *models.StudyPlan) int {
	if plan == nil {
		return 0
	}
	count := 0
	for _, week := range plan.Weeks {
		for _, day := range week.Days {
			for _, task := range day.Tasks {
				if !task.Completed {
					count++
				}
			}
		}
	}
	return count
}

// appendBadge adds a badge preserving insertion order, collapsing duplicates
func appendBadge(badges []string, badge string) []string {
	for _, b := range badges {
		if b == badge {
			return badges
		}
	}
	return append(badges, badge)
}
