package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/services"
)

func newCommentFixture() (services.CommentService, *fakeCommentRepo, *fakeQuestionRepo, *fakeBroker) {
	commentRepo := newFakeCommentRepo()
	questionRepo := newFakeQuestionRepo()
	broker := &fakeBroker{}
	svc := NewCommentService(commentRepo, questionRepo, broker, feedTopic, testLogger())
	return svc, commentRepo, questionRepo, broker
}

func seedQuestion(repo *fakeQuestionRepo, id string) {
	repo.questions[id] = &models.Question{
		ID:          id,
		AuthorID:    "alice",
		Title:       "Q",
		Status:      models.QuestionStatusOpen,
		UpvotedBy:   []string{},
		DownvotedBy: []string{},
	}
}

func TestCreateComment(t *testing.T) {
	svc, _, questionRepo, broker := newCommentFixture()
	seedQuestion(questionRepo, "q1")

	comment, err := svc.CreateComment(context.Background(), &services.CreateCommentRequest{
		AuthorID:   "bob",
		QuestionID: "q1",
		Content:    "  helpful answer  ",
	})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if comment.Content != "helpful answer" {
		t.Errorf("content not trimmed: %q", comment.Content)
	}
	if comment.UpvotedBy == nil || comment.DownvotedBy == nil {
		t.Error("vote sets must be initialized empty, not nil")
	}

	event := broker.events[len(broker.events)-1]
	if event.Name != models.EventCommentCreated {
		t.Fatalf("expected created event, got %s", event.Name)
	}
	if event.QuestionID != "q1" {
		t.Errorf("comment events must carry the parent question id, got %q", event.QuestionID)
	}
	if event.Comment == nil || event.Comment.ID != comment.ID {
		t.Error("created event must carry the full comment")
	}
}

func TestCreateComment_ContentLimits(t *testing.T) {
	svc, _, questionRepo, _ := newCommentFixture()
	seedQuestion(questionRepo, "q1")

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "at limit", content: strings.Repeat("x", 500), wantErr: false},
		{name: "over limit", content: strings.Repeat("x", 501), wantErr: true},
		{name: "empty", content: "", wantErr: true},
		{name: "whitespace only", content: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateComment(context.Background(), &services.CreateCommentRequest{
				AuthorID:   "bob",
				QuestionID: "q1",
				Content:    tt.content,
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateComment_ParentMustExist(t *testing.T) {
	svc, _, _, broker := newCommentFixture()

	_, err := svc.CreateComment(context.Background(), &services.CreateCommentRequest{
		AuthorID:   "bob",
		QuestionID: "ghost",
		Content:    "hello",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if len(broker.events) != 0 {
		t.Error("failed mutations must not broadcast")
	}
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	svc, commentRepo, questionRepo, broker := newCommentFixture()
	seedQuestion(questionRepo, "q1")
	commentRepo.comments["c1"] = &models.Comment{ID: "c1", QuestionID: "q1", AuthorID: "bob", Content: "original"}

	if _, err := svc.UpdateComment(context.Background(), "mallory", "c1", "defaced"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-author update must be forbidden, got %v", err)
	}

	updated, err := svc.UpdateComment(context.Background(), "bob", "c1", "edited")
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("expected %q, got %q", "edited", updated.Content)
	}

	event := broker.events[len(broker.events)-1]
	if event.Name != models.EventCommentUpdated || event.QuestionID != "q1" {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	svc, commentRepo, _, broker := newCommentFixture()
	commentRepo.comments["c1"] = &models.Comment{ID: "c1", QuestionID: "q1", AuthorID: "bob"}

	if err := svc.DeleteComment(context.Background(), "mallory", "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-author delete must be forbidden, got %v", err)
	}

	if err := svc.DeleteComment(context.Background(), "bob", "c1"); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if len(commentRepo.comments) != 0 {
		t.Error("comment should be gone")
	}

	event := broker.events[len(broker.events)-1]
	if event.Name != models.EventCommentDeleted || event.EntityID != "c1" || event.QuestionID != "q1" {
		t.Errorf("unexpected delete event %+v", event)
	}
}

func TestCommentVote_FlipAndWithdraw(t *testing.T) {
	svc, commentRepo, _, broker := newCommentFixture()
	commentRepo.comments["c1"] = &models.Comment{ID: "c1", QuestionID: "q1", AuthorID: "bob"}

	counts, err := svc.Vote(context.Background(), "carol", "c1", models.VoteDown)
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if counts.Upvotes != 0 || counts.Downvotes != 1 {
		t.Errorf("expected 0/1, got %d/%d", counts.Upvotes, counts.Downvotes)
	}

	counts, err = svc.Vote(context.Background(), "carol", "c1", models.VoteUp)
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if counts.Upvotes != 1 || counts.Downvotes != 0 {
		t.Errorf("expected 1/0 after flip, got %d/%d", counts.Upvotes, counts.Downvotes)
	}

	event := broker.events[len(broker.events)-1]
	if event.Name != models.EventCommentVoted || event.QuestionID != "q1" || event.Vote != "up" {
		t.Errorf("unexpected vote event %+v", event)
	}

	counts, err = svc.RemoveVote(context.Background(), "carol", "c1")
	if err != nil {
		t.Fatalf("RemoveVote failed: %v", err)
	}
	if counts.Upvotes != 0 || counts.Downvotes != 0 {
		t.Errorf("expected 0/0 after withdrawal, got %d/%d", counts.Upvotes, counts.Downvotes)
	}
}

func TestCommentVote_MissingComment(t *testing.T) {
	svc, _, _, broker := newCommentFixture()

	if _, err := svc.Vote(context.Background(), "carol", "ghost", models.VoteUp); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if len(broker.events) != 0 {
		t.Error("failed mutations must not broadcast")
	}
}
