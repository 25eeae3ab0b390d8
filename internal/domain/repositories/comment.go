package repositories

import (
	"context"

	"focusportal/internal/domain/models"
)

// CommentRepository defines data access operations for comments.
type CommentRepository interface {
	// Create creates a new comment attached to a question
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByQuestion retrieves a question's comments oldest first
	ListByQuestion(ctx context.Context, questionID string) ([]models.Comment, error)

	// Update persists content changes
	Update(ctx context.Context, comment *models.Comment) error

	// Delete deletes a comment document
	Delete(ctx context.Context, id string) error

	// DeleteByQuestion removes all comments attached to a question,
	// used when the question itself is deleted
	DeleteByQuestion(ctx context.Context, questionID string) error

	// SetVote and ClearVote mirror the question vote operations.
	SetVote(ctx context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error)
	ClearVote(ctx context.Context, id, actorID string) (*models.VoteCounts, error)
}
