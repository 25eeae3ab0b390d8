package services

import (
	"context"

	"focusportal/internal/domain/models"
)

// FolderService handles folder tree business logic. The owner identity
// is an explicit parameter on every request; ownership checks never
// reach into ambient request state.
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolderContents returns the folder itself (nil for root), its
	// direct child folders, and its direct files
	GetFolderContents(ctx context.Context, ownerID string, folderID *string) (*models.FolderContents, error)

	// GetFolderPath returns the ordered ancestor chain from root to
	// the given folder (breadcrumb)
	GetFolderPath(ctx context.Context, ownerID, folderID string) ([]models.Folder, error)

	// UpdateFolder renames and/or moves a folder
	UpdateFolder(ctx context.Context, ownerID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder and everything under it
	DeleteFolder(ctx context.Context, ownerID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  // Set by handler from auth context, not from request body
	Name     string
	ParentID *string // null for root
}

// UpdateFolderRequest represents a folder rename and/or move request.
// The move is tri-state and transport-agnostic (no JSON tags) - the
// handler maps from httputil.OptionalString:
//   - MoveParent=false: don't change the parent
//   - MoveParent=true, ParentID=nil: move to root
//   - MoveParent=true, ParentID=&id: move under that folder
type UpdateFolderRequest struct {
	Name       *string
	ParentID   *string
	MoveParent bool
}
