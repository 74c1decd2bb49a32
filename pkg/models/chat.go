package models

// ChatMessage is one turn in a document-chat conversation
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // "user" or "model"
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// ChatSession is a conversation with the document assistant, usually
// anchored to an uploaded document whose extracted text is kept in
// DocumentContext. Messages are append-only.
type ChatSession struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	FileName        string        `json:"fileName,omitempty"`
	DocumentContext string        `json:"documentContext"`
	Messages        []ChatMessage `json:"messages"`
	CreatedAt       int64         `json:"createdAt"`
	LastUpdated     int64         `json:"lastUpdated"`
}
