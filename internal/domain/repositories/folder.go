package repositories

import (
	"context"

	"focusportal/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every lookup is owner-scoped; a folder belonging to another user is
// reported as not found.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// GetByNameAndParent finds a sibling folder by exact name, or nil
	// if none exists
	GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error)

	// Update persists name and parent changes
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a single folder document
	Delete(ctx context.Context, id, ownerID string) error

	// ListChildren lists immediate child folders (nil parent = root)
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error)
}
