package services

import (
	"context"

	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
)

// QuestionService handles question business logic and broadcasts a
// state event after every successful mutation.
type QuestionService interface {
	// CreateQuestion posts a new question
	CreateQuestion(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error)

	// GetQuestion retrieves a question by ID
	GetQuestion(ctx context.Context, id string) (*models.Question, error)

	// ListQuestions retrieves questions newest first
	ListQuestions(ctx context.Context, filter repositories.QuestionFilter) ([]models.Question, error)

	// UpdateQuestion updates a question (author only)
	UpdateQuestion(ctx context.Context, actorID, id string, req *UpdateQuestionRequest) (*models.Question, error)

	// DeleteQuestion deletes a question and its comments (author only)
	DeleteQuestion(ctx context.Context, actorID, id string) error

	// Vote casts or flips the actor's vote on a question
	Vote(ctx context.Context, actorID, id string, direction models.VoteDirection) (*models.VoteCounts, error)

	// RemoveVote withdraws the actor's vote, whichever direction it was
	RemoveVote(ctx context.Context, actorID, id string) (*models.VoteCounts, error)
}

// CreateQuestionRequest represents a question creation request
type CreateQuestionRequest struct {
	AuthorID string // Set by handler from auth context, not from request body
	Title    string
	Content  string
	Category string
	Tags     []string
	Images   []string
}

// UpdateQuestionRequest represents a question update request
type UpdateQuestionRequest struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
	Images   []string
	Status   *models.QuestionStatus
}
