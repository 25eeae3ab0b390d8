package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/services"
	"focusportal/internal/httputil"
)

// maxUploadBytes caps multipart uploads at 50MB.
const maxUploadBytes = 50 << 20

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

type createFileBody struct {
	FileName string  `json:"file_name"`
	Source   string  `json:"source"`
	FolderID *string `json:"folder_id"`
	Location string  `json:"location"`
	Size     int64   `json:"size"`
	RemoteID *string `json:"remote_id"`
}

type updateFileBody struct {
	FileName *string                 `json:"file_name"`
	FolderID httputil.OptionalString `json:"folder_id"`
}

type updateFileContentBody struct {
	Location string `json:"location"`
	Size     int64  `json:"size"`
}

// CreateFile registers an uploaded or app-created file
// POST /api/files
// Returns 201 if created, 409 with existing file if duplicate
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var body createFileBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.CreateFileRequest{
		OwnerID:  userID,
		FileName: body.FileName,
		Source:   models.FileSource(body.Source),
		FolderID: body.FolderID,
		Location: body.Location,
		Size:     body.Size,
		RemoteID: body.RemoteID,
	}

	file, err := h.fileService.CreateFile(r.Context(), req)
	if err != nil {
		HandleCreateConflict(w, err, func() (*models.File, error) {
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				return h.fileService.GetFile(r.Context(), userID, conflictErr.ResourceID)
			}
			return nil, err
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// UploadFile receives a multipart upload, spools it to a temp file,
// and hands it to the service for blob storage and registration
// POST /api/files/upload
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer part.Close()

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		h.logger.Error("failed to create temp file", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, part)
	tmp.Close()
	if err != nil {
		h.logger.Error("failed to spool upload", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	file, err := h.fileService.UploadFile(r.Context(), &services.UploadFileRequest{
		OwnerID:   userID,
		FileName:  header.Filename,
		FolderID:  folderID,
		LocalPath: tmp.Name(),
		Size:      size,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile renames and/or moves a file
// PATCH /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	var body updateFileBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.UpdateFileRequest{
		FileName:   body.FileName,
		FolderID:   body.FolderID.Value,
		MoveFolder: body.FolderID.Present,
	}

	file, err := h.fileService.UpdateFile(r.Context(), userID, id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFileContent replaces the stored content of an editable file
// PUT /api/files/{id}/content
func (h *FileHandler) UpdateFileContent(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	var body updateFileContentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.UpdateFileContent(r.Context(), userID, id, body.Location, body.Size)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
