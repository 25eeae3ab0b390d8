package models

import (
	"time"
)

type Comment struct {
	ID         string `json:"id" db:"id"`
	QuestionID string `json:"question_id" db:"question_id"`
	AuthorID   string `json:"author_id" db:"author_id"`
	Content    string `json:"content" db:"content"`
	// Same mutual-exclusion invariant as Question voting.
	UpvotedBy   []string  `json:"upvoted_by" db:"upvoted_by"`
	DownvotedBy []string  `json:"downvoted_by" db:"downvoted_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Upvotes returns the current upvote count.
func (c *Comment) Upvotes() int { return len(c.UpvotedBy) }

// Downvotes returns the current downvote count.
func (c *Comment) Downvotes() int { return len(c.DownvotedBy) }
