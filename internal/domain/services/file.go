package services

import (
	"context"

	"focusportal/internal/domain/models"
)

// FileService handles file business logic. Files follow the same
// ownership-scoped, single-document mutation pattern as folders, but
// without recursion.
type FileService interface {
	// CreateFile registers an uploaded or app-created file
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)

	// UploadFile pushes a local file into blob storage and registers it
	UploadFile(ctx context.Context, req *UploadFileRequest) (*models.File, error)

	// GetFile retrieves a file by ID
	GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error)

	// UpdateFile renames and/or moves a file. Rename preserves the
	// original extension regardless of the supplied base name.
	UpdateFile(ctx context.Context, ownerID, fileID string, req *UpdateFileRequest) (*models.File, error)

	// UpdateFileContent replaces the stored content location of an
	// editable file (md, docx)
	UpdateFileContent(ctx context.Context, ownerID, fileID string, location string, size int64) (*models.File, error)

	// DeleteFile deletes a file and releases its blob, best-effort
	DeleteFile(ctx context.Context, ownerID, fileID string) error
}

// CreateFileRequest represents a file registration request
type CreateFileRequest struct {
	OwnerID  string // Set by handler from auth context, not from request body
	FileName string
	Source   models.FileSource
	FolderID *string // null for root
	Location string  // local path or remote URL
	Size     int64
	RemoteID *string // blob storage identifier, when uploaded
}

// UploadFileRequest represents an upload of a local (already received)
// file into blob storage.
type UploadFileRequest struct {
	OwnerID   string // Set by handler from auth context, not from request body
	FileName  string
	FolderID  *string
	LocalPath string // temp file written by the handler
	Size      int64
}

// UpdateFileRequest represents a file rename and/or move request.
// Same tri-state move semantics as UpdateFolderRequest.
type UpdateFileRequest struct {
	FileName   *string
	FolderID   *string
	MoveFolder bool
}
