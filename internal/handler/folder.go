package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/services"
	"focusportal/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

type createFolderBody struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type updateFolderBody struct {
	Name     *string                 `json:"name"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 with existing folder if duplicate
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var body createFolderBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.CreateFolderRequest{
		OwnerID:  userID,
		Name:     body.Name,
		ParentID: body.ParentID,
	}

	folder, err := h.folderService.CreateFolder(r.Context(), req)
	if err != nil {
		// Handle conflict by fetching and returning existing folder with 409
		HandleCreateConflict(w, err, func() (*models.FolderContents, error) {
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				id := conflictErr.ResourceID
				return h.folderService.GetFolderContents(r.Context(), userID, &id)
			}
			return nil, err
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder returns a folder with its direct children
// GET /api/folders/{id} ("root" for the top level)
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var folderID *string
	if id != "root" {
		folderID = &id
	}

	contents, err := h.folderService.GetFolderContents(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// GetFolderPath returns the breadcrumb from the root to a folder
// GET /api/folders/{id}/path
func (h *FolderHandler) GetFolderPath(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	path, err := h.folderService.GetFolderPath(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, path)
}

// UpdateFolder renames and/or moves a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var body updateFolderBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.UpdateFolderRequest{
		Name:       body.Name,
		ParentID:   body.ParentID.Value,
		MoveParent: body.ParentID.Present,
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), userID, id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and everything under it
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
