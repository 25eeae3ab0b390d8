package repositories

import (
	"context"

	"focusportal/internal/domain/models"
)

// QuestionFilter narrows question listings. Zero values mean no filter.
type QuestionFilter struct {
	Category string
	Tag      string
	Limit    int
}

// QuestionRepository defines data access operations for questions.
// Questions are readable by any authenticated user; author checks for
// mutations happen in the service layer.
type QuestionRepository interface {
	// Create creates a new question
	Create(ctx context.Context, question *models.Question) error

	// GetByID retrieves a question by ID
	GetByID(ctx context.Context, id string) (*models.Question, error)

	// List retrieves questions newest first, optionally filtered
	List(ctx context.Context, filter QuestionFilter) ([]models.Question, error)

	// Update persists title, content, category, tags, images, status
	Update(ctx context.Context, question *models.Question) error

	// Delete deletes a question document
	Delete(ctx context.Context, id string) error

	// SetVote moves the actor into the requested vote set, removing
	// them from both sets first, in one statement. Returns the new
	// absolute counts.
	SetVote(ctx context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error)

	// ClearVote removes the actor from both vote sets. Not an error
	// if the actor was in neither.
	ClearVote(ctx context.Context, id, actorID string) (*models.VoteCounts, error)
}
