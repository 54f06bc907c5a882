package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply to a tweet. Replies nest recursively, though the UI only
// ever renders one level. Every comment carries a stable id so that admin
// replies can reference it without depending on its position in the array.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Admin     bool      `json:"admin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Replies   []Comment `json:"replies,omitempty"`
}

func NewComment(author string, content string, admin bool, now time.Time) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Admin:     admin,
		Timestamp: now,
	}
}
