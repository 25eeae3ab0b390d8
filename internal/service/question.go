package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"focusportal/internal/broadcast"
	"focusportal/internal/config"
	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
	"focusportal/internal/domain/services"
)

type questionService struct {
	questionRepo repositories.QuestionRepository
	commentRepo  repositories.CommentRepository
	broker       broadcast.Broker
	topic        string
	logger       *slog.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo repositories.QuestionRepository,
	commentRepo repositories.CommentRepository,
	broker broadcast.Broker,
	topic string,
	logger *slog.Logger,
) services.QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		commentRepo:  commentRepo,
		broker:       broker,
		topic:        topic,
		logger:       logger,
	}
}

// CreateQuestion posts a new question
func (s *questionService) CreateQuestion(ctx context.Context, req *services.CreateQuestionRequest) (*models.Question, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	question := &models.Question{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		Images:      req.Images,
		UpvotedBy:   []string{},
		DownvotedBy: []string{},
		Status:      models.QuestionStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("question created", "id", question.ID, "author_id", question.AuthorID)

	s.publish(models.Event{
		Name:     models.EventQuestionCreated,
		EntityID: question.ID,
		ActorID:  req.AuthorID,
		Question: question,
	})

	return question, nil
}

// GetQuestion retrieves a question by ID
func (s *questionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// ListQuestions retrieves questions newest first
func (s *questionService) ListQuestions(ctx context.Context, filter repositories.QuestionFilter) ([]models.Question, error) {
	return s.questionRepo.List(ctx, filter)
}

// UpdateQuestion updates a question. Only the author may mutate it.
func (s *questionService) UpdateQuestion(ctx context.Context, actorID, id string, req *services.UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if question.AuthorID != actorID {
		return nil, &domain.ForbiddenError{Message: "only the author may update this question"}
	}

	if req.Title != nil {
		question.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		question.Content = strings.TrimSpace(*req.Content)
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Tags != nil {
		question.Tags = req.Tags
	}
	if req.Images != nil {
		question.Images = req.Images
	}
	if req.Status != nil {
		switch *req.Status {
		case models.QuestionStatusOpen, models.QuestionStatusAnswered, models.QuestionStatusClosed:
			question.Status = *req.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
	}

	if err := validation.Validate(question.Title,
		validation.Required,
		validation.Length(1, config.MaxQuestionTitleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}
	if err := validation.Validate(question.Content, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: content: %v", domain.ErrValidation, err)
	}

	question.UpdatedAt = time.Now()

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("question updated", "id", question.ID)

	s.publish(models.Event{
		Name:     models.EventQuestionUpdated,
		EntityID: question.ID,
		ActorID:  actorID,
		Question: question,
	})

	return question, nil
}

// DeleteQuestion deletes a question and all its comments. Only the
// author may delete it.
func (s *questionService) DeleteQuestion(ctx context.Context, actorID, id string) error {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if question.AuthorID != actorID {
		return &domain.ForbiddenError{Message: "only the author may delete this question"}
	}

	// Delete the question first: if the comment cleanup below fails we
	// are left with unreachable orphan comments, not a comment-less
	// question that still shows up in listings. There is no
	// cross-document transaction to make the pair atomic.
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByQuestion(ctx, id); err != nil {
		s.logger.Warn("failed to clean up comments for deleted question", "id", id, "error", err)
	}

	s.logger.Info("question deleted", "id", id, "author_id", actorID)

	s.publish(models.Event{
		Name:     models.EventQuestionDeleted,
		EntityID: id,
		ActorID:  actorID,
	})

	return nil
}

// Vote casts or flips the actor's vote on a question
func (s *questionService) Vote(ctx context.Context, actorID, id string, direction models.VoteDirection) (*models.VoteCounts, error) {
	counts, err := s.questionRepo.SetVote(ctx, id, actorID, direction)
	if err != nil {
		return nil, err
	}

	s.publish(models.Event{
		Name:      models.EventQuestionVoted,
		EntityID:  id,
		ActorID:   actorID,
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
		Vote:      string(direction),
	})

	return counts, nil
}

// RemoveVote withdraws the actor's vote, whichever direction it was.
// Not an error if the actor had no vote.
func (s *questionService) RemoveVote(ctx context.Context, actorID, id string) (*models.VoteCounts, error) {
	counts, err := s.questionRepo.ClearVote(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	s.publish(models.Event{
		Name:      models.EventQuestionVoted,
		EntityID:  id,
		ActorID:   actorID,
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
	})

	return counts, nil
}

// publish emits a state event to the feed topic. Emission never fails
// the mutation; a missing broker is skipped silently.
func (s *questionService) publish(event models.Event) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(s.topic, event)
}

// validateCreateRequest validates a question creation request
func (s *questionService) validateCreateRequest(req *services.CreateQuestionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxQuestionTitleLength),
		),
		validation.Field(&req.Content, validation.Required),
	)
}
