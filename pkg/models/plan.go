package models

// Question is a single multiple-choice quiz question
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Explanation   string   `json:"explanation"`
}

// Task is one unit of work inside a day of a study plan.
// Once Completed becomes true it never reverts.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Quiz        *Question `json:"quiz,omitempty"`
	QuizTaken   *bool     `json:"quizTaken,omitempty"`
}

// DayPlan groups the tasks for one day
type DayPlan struct {
	Day   int    `json:"day"`
	Tasks []Task `json:"tasks"`
}

// WeekPlan groups the days of one week
type WeekPlan struct {
	Week int       `json:"week"`
	Days []DayPlan `json:"days"`
}

// StudyPlan is the active learning roadmap for a user (zero or one per user)
type StudyPlan struct {
	ID        string     `json:"id"`
	Subject   string     `json:"subject"`
	Duration  string     `json:"duration"`
	Weeks     []WeekPlan `json:"weeks"`
	CreatedAt int64      `json:"createdAt"` // unix milliseconds
}
