package models

// Note is a user-authored markdown note
type Note struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Content    string   `json:"content"` // Markdown
	Tags       []string `json:"tags"`
	LastEdited int64    `json:"lastEdited"` // unix milliseconds
}
