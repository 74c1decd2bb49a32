package models

// Resource is a study material suggested by the content generator
type Resource struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Type        string `json:"type" db:"type"` // "video", "article" or "exercise"
	URL         string `json:"url" db:"url"`
	Authority   string `json:"authority" db:"authority"` // "High" or "Medium"
	Description string `json:"description" db:"description"`
}

// UserMemory is the canonical per-user profile and gamification state.
// Level is always derived from XP and must never be set independently.
type UserMemory struct {
	Name            string   `json:"name"`
	Grade           string   `json:"grade"`
	Goals           []string `json:"goals"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	SubjectsStudied []string `json:"subjectsStudied"`

	PomodoroSessions int `json:"pomodoroSessions"`
	TotalFocusTime   int `json:"totalFocusTime"` // minutes

	XP                int `json:"xp"`
	Level             int `json:"level"`
	QuestionsAnswered int `json:"questionsAnswered"`
	QuestionsCorrect  int `json:"questionsCorrect"`

	SavedResources []Resource `json:"savedResources"`
	UnlockedBadges []string   `json:"unlockedBadges"`
}
