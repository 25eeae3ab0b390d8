package models

import (
	"time"
)

// QuestionStatus is the lifecycle state of a question.
type QuestionStatus string

const (
	QuestionStatusOpen     QuestionStatus = "open"
	QuestionStatusAnswered QuestionStatus = "answered"
	QuestionStatusClosed   QuestionStatus = "closed"
)

type Question struct {
	ID       string   `json:"id" db:"id"`
	AuthorID string   `json:"author_id" db:"author_id"`
	Title    string   `json:"title" db:"title"`
	Content  string   `json:"content" db:"content"`
	Category string   `json:"category" db:"category"`
	Tags     []string `json:"tags" db:"tags"`
	Images   []string `json:"images" db:"images"`
	// A user appears in at most one of the two vote sets at a time;
	// casting one vote clears the other.
	UpvotedBy   []string       `json:"upvoted_by" db:"upvoted_by"`
	DownvotedBy []string       `json:"downvoted_by" db:"downvoted_by"`
	Status      QuestionStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Upvotes returns the current upvote count.
func (q *Question) Upvotes() int { return len(q.UpvotedBy) }

// Downvotes returns the current downvote count.
func (q *Question) Downvotes() int { return len(q.DownvotedBy) }
