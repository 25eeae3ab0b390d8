package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
	"focusportal/internal/domain/services"
	"focusportal/internal/httputil"
)

// QuestionHandler handles question HTTP requests
type QuestionHandler struct {
	questionService services.QuestionService
	logger          *slog.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService services.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

type createQuestionBody struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Images   []string `json:"images"`
}

type updateQuestionBody struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Images   []string `json:"images"`
	Status   *string  `json:"status"`
}

type voteBody struct {
	Direction string `json:"direction"`
}

// CreateQuestion posts a new question
// POST /api/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var body createQuestionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.CreateQuestionRequest{
		AuthorID: userID,
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
		Tags:     body.Tags,
		Images:   body.Images,
	}

	question, err := h.questionService.CreateQuestion(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, question)
}

// GetQuestion retrieves a question by ID
// GET /api/questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	question, err := h.questionService.GetQuestion(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, question)
}

// ListQuestions retrieves questions newest first
// GET /api/questions?category=&tag=&limit=
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := repositories.QuestionFilter{
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	questions, err := h.questionService.ListQuestions(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, questions)
}

// UpdateQuestion updates a question (author only)
// PATCH /api/questions/{id}
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	var body updateQuestionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.UpdateQuestionRequest{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
		Tags:     body.Tags,
		Images:   body.Images,
	}
	if body.Status != nil {
		status := models.QuestionStatus(*body.Status)
		req.Status = &status
	}

	question, err := h.questionService.UpdateQuestion(r.Context(), userID, id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, question)
}

// DeleteQuestion deletes a question and its comments (author only)
// DELETE /api/questions/{id}
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	if err := h.questionService.DeleteQuestion(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Vote casts or flips the caller's vote on a question
// PUT /api/questions/{id}/vote
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
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

	counts, err := h.questionService.Vote(r.Context(), userID, id, direction)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// RemoveVote withdraws the caller's vote on a question
// DELETE /api/questions/{id}/vote
func (h *QuestionHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Question ID is required")
		return
	}

	counts, err := h.questionService.RemoveVote(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}
