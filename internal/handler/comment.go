package handler

import (
	"log/slog"
	"net/http"

	"focusportal/internal/domain/models"
	"focusportal/internal/domain/services"
	"focusportal/internal/httputil"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentService services.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

type createCommentBody struct {
	Content string `json:"content"`
}

type updateCommentBody struct {
	Content string `json:"content"`
}

// CreateComment attaches a comment to a question
// POST /api/questions/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	questionID := r.PathValue("id")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	var body createCommentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.CreateCommentRequest{
		AuthorID:   userID,
		QuestionID: questionID,
		Content:    body.Content,
	}

	comment, err := h.commentService.CreateComment(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments retrieves a question's comments oldest first
// GET /api/questions/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), questionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// UpdateComment edits comment content (author only)
// PATCH /api/comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	var body updateCommentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), userID, id, body.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comment)
}

// DeleteComment removes a comment (author only)
// DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Vote casts or flips the caller's vote on a comment
// PUT /api/comments/{id}/vote
func (h *CommentHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	var body voteBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	direction, err := models.ParseVoteDirection(body.Direction)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.commentService.Vote(r.Context(), userID, id, direction)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// RemoveVote withdraws the caller's vote on a comment
// DELETE /api/comments/{id}/vote
func (h *CommentHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	counts, err := h.commentService.RemoveVote(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}
