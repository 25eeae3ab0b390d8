package services

import (
	"context"

	"focusportal/internal/domain/models"
)

// CommentService handles comment business logic. Update and delete are
// restricted to the comment's author; votes are open to any
// authenticated user.
type CommentService interface {
	// CreateComment attaches a comment to a question
	CreateComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error)

	// ListComments retrieves a question's comments oldest first
	ListComments(ctx context.Context, questionID string) ([]models.Comment, error)

	// UpdateComment edits comment content (author only)
	UpdateComment(ctx context.Context, actorID, id, content string) (*models.Comment, error)

	// DeleteComment removes a comment (author only)
	DeleteComment(ctx context.Context, actorID, id string) error

	// Vote casts or flips the actor's vote on a comment
	Vote(ctx context.Context, actorID, id string, direction models.VoteDirection) (*models.VoteCounts, error)

	// RemoveVote withdraws the actor's vote
	RemoveVote(ctx context.Context, actorID, id string) (*models.VoteCounts, error)
}

// CreateCommentRequest represents a comment creation request
type CreateCommentRequest struct {
	AuthorID   string // Set by handler from auth context, not from request body
	QuestionID string
	Content    string
}
