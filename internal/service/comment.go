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

type commentService struct {
	commentRepo  repositories.CommentRepository
	questionRepo repositories.QuestionRepository
	broker       broadcast.Broker
	topic        string
	logger       *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	questionRepo repositories.QuestionRepository,
	broker broadcast.Broker,
	topic string,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		broker:       broker,
		topic:        topic,
		logger:       logger,
	}
}

// CreateComment attaches a comment to a question
func (s *commentService) CreateComment(ctx context.Context, req *services.CreateCommentRequest) (*models.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Parent question must exist
	if _, err := s.questionRepo.GetByID(ctx, req.QuestionID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		QuestionID:  req.QuestionID,
		AuthorID:    req.AuthorID,
		Content:     req.Content,
		UpvotedBy:   []string{},
		DownvotedBy: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"question_id", comment.QuestionID,
		"author_id", comment.AuthorID,
	)

	s.publish(models.Event{
		Name:       models.EventCommentCreated,
		EntityID:   comment.ID,
		ActorID:    req.AuthorID,
		QuestionID: comment.QuestionID,
		Comment:    comment,
	})

	return comment, nil
}

// ListComments retrieves a question's comments oldest first
func (s *commentService) ListComments(ctx context.Context, questionID string) ([]models.Comment, error) {
	return s.commentRepo.ListByQuestion(ctx, questionID)
}

// UpdateComment edits comment content. Only the author may mutate it.
func (s *commentService) UpdateComment(ctx context.Context, actorID, id, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.Validate(content,
		validation.Required,
		validation.Length(1, config.MaxCommentLength),
	); err != nil {
		return nil, fmt.Errorf("%w: content: %v", domain.ErrValidation, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID {
		return nil, &domain.ForbiddenError{Message: "only the author may update this comment"}
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment updated", "id", comment.ID)

	s.publish(models.Event{
		Name:       models.EventCommentUpdated,
		EntityID:   comment.ID,
		ActorID:    actorID,
		QuestionID: comment.QuestionID,
		Comment:    comment,
	})

	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete it.
func (s *commentService) DeleteComment(ctx context.Context, actorID, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		return &domain.ForbiddenError{Message: "only the author may delete this comment"}
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "id", id, "question_id", comment.QuestionID)

	s.publish(models.Event{
		Name:       models.EventCommentDeleted,
		EntityID:   id,
		ActorID:    actorID,
		QuestionID: comment.QuestionID,
	})

	return nil
}

// Vote casts or flips the actor's vote on a comment
func (s *commentService) Vote(ctx context.Context, actorID, id string, direction models.VoteDirection) (*models.VoteCounts, error) {
	// Fetch first: voted events carry the parent question id so
	// subscribers can route them.
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.commentRepo.SetVote(ctx, id, actorID, direction)
	if err != nil {
		return nil, err
	}

	s.publish(models.Event{
		Name:       models.EventCommentVoted,
		EntityID:   id,
		ActorID:    actorID,
		QuestionID: comment.QuestionID,
		Upvotes:    counts.Upvotes,
		Downvotes:  counts.Downvotes,
		Vote:       string(direction),
	})

	return counts, nil
}

// RemoveVote withdraws the actor's vote
func (s *commentService) RemoveVote(ctx context.Context, actorID, id string) (*models.VoteCounts, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.commentRepo.ClearVote(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	s.publish(models.Event{
		Name:       models.EventCommentVoted,
		EntityID:   id,
		ActorID:    actorID,
		QuestionID: comment.QuestionID,
		Upvotes:    counts.Upvotes,
		Downvotes:  counts.Downvotes,
	})

	return counts, nil
}

func (s *commentService) publish(event models.Event) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(s.topic, event)
}

// validateCreateRequest validates a comment creation request
func (s *commentService) validateCreateRequest(req *services.CreateCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required),
		validation.Field(&req.QuestionID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxCommentLength),
		),
	)
}
