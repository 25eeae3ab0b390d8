package repositories

import (
	"context"

	"focusportal/internal/domain/models"
)

// FileRepository defines data access operations for files.
// All lookups are owner-scoped, same as folders.
type FileRepository interface {
	// Create creates a new file document
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id, ownerID string) (*models.File, error)

	// Update persists file name, folder, and content-location changes
	Update(ctx context.Context, file *models.File) error

	// Delete deletes a single file document
	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder lists files directly inside a folder (nil = root)
	ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]models.File, error)
}
