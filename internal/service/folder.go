package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"focusportal/internal/config"
	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
	"focusportal/internal/domain/services"
	"focusportal/internal/storage"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under the given parent (nil = root)
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Parent must exist and belong to the same owner. A new node
	// cannot be its own ancestor, so no cycle check is needed here.
	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID); err != nil {
			return nil, err
		}
	}

	// Reject duplicate sibling names
	sibling, err := s.folderRepo.GetByNameAndParent(ctx, req.OwnerID, req.Name, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if sibling != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}

	now := time.Now()
	folder := &models.Folder{
		OwnerID:   req.OwnerID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolderContents returns the folder (nil for root), its direct child
// folders, and its direct files. Not recursive.
func (s *folderService) GetFolderContents(ctx context.Context, ownerID string, folderID *string) (*models.FolderContents, error) {
	var folder *models.Folder
	var err error

	if folderID != nil {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return &models.FolderContents{
		Folder:  folder,
		Folders: childFolders,
		Files:   files,
	}, nil
}

// GetFolderPath returns the ordered ancestor chain from root to the
// given folder. The walk is bounded and cycle-checked: a stored cycle
// is reported as an error instead of looping.
func (s *folderService) GetFolderPath(ctx context.Context, ownerID, folderID string) ([]models.Folder, error) {
	var chain []models.Folder
	visited := make(map[string]bool)

	current := &folderID
	for depth := 0; current != nil; depth++ {
		if depth >= config.MaxTreeDepth || visited[*current] {
			return nil, &domain.DependencyError{
				Message: fmt.Sprintf("folder %s: ancestor chain does not terminate", folderID),
			}
		}
		visited[*current] = true

		folder, err := s.folderRepo.GetByID(ctx, *current, ownerID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *folder)
		current = folder.ParentID
	}

	// Walked leaf-to-root; breadcrumb is root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, ownerID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}

	if req.MoveParent {
		if req.ParentID != nil {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, ownerID)
			if err != nil {
				return nil, fmt.Errorf("parent folder not found: %w", err)
			}

			// A folder must never become a descendant of itself
			if err := s.validateNoCycle(ctx, ownerID, folderID, parent.ID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
			s.logger.Debug("moving folder to new parent", "folder_id", folderID, "parent_id", parent.ID)
		} else {
			// null = move to root
			folder.ParentID = nil
			s.logger.Debug("moving folder to root", "folder_id", folderID)
		}
	}

	// Check for duplicate name in target location
	if req.Name != nil || req.MoveParent {
		sibling, err := s.folderRepo.GetByNameAndParent(ctx, ownerID, folder.Name, folder.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		if sibling != nil && sibling.ID != folder.ID {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   sibling.ID,
			}
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and everything under it. The traversal
// uses an explicit worklist instead of recursion so the order (files
// first, child folders before parents) is explicit and deep trees do
// not grow the call stack.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	root, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	// Collect the subtree breadth-first; parents always precede their
	// children in this order. The visited set keeps a corrupted parent
	// chain (a stored cycle) from growing the worklist forever.
	order := []string{root.ID}
	visited := map[string]bool{root.ID: true}
	for i := 0; i < len(order); i++ {
		children, err := s.folderRepo.ListChildren(ctx, &order[i], ownerID)
		if err != nil {
			return fmt.Errorf("failed to list child folders: %w", err)
		}
		for _, child := range children {
			if visited[child.ID] {
				return &domain.DependencyError{Message: "folder tree contains a cycle"}
			}
			visited[child.ID] = true
			order = append(order, child.ID)
		}
	}

	// Delete every file anywhere under the subtree, releasing blobs
	// best-effort: a failed release is logged, never fatal, so a
	// transient storage outage cannot make a user's data unremovable.
	for _, id := range order {
		folderRef := id
		files, err := s.fileRepo.ListByFolder(ctx, &folderRef, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		for _, file := range files {
			s.releaseBlob(ctx, &file)
			if err := s.fileRepo.Delete(ctx, file.ID, ownerID); err != nil {
				return fmt.Errorf("failed to delete file %q: %w", file.FileName, err)
			}
			s.logger.Debug("deleted file", "id", file.ID, "name", file.FileName)
		}
	}

	// Delete folders in reverse collection order: children before
	// parents, the subtree root last.
	for i := len(order) - 1; i >= 0; i-- {
		if err := s.folderRepo.Delete(ctx, order[i], ownerID); err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
	}

	s.logger.Info("folder deleted",
		"id", root.ID,
		"name", root.Name,
		"owner_id", ownerID,
		"subtree_folders", len(order),
	)

	return nil
}

// validateNoCycle walks the ancestor chain of the new parent and
// rejects the move if it passes through the folder being moved.
func (s *folderService) validateNoCycle(ctx context.Context, ownerID, folderID, newParentID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder into itself", domain.ErrValidation)
	}

	current := &newParentID
	for depth := 0; current != nil; depth++ {
		if depth >= config.MaxTreeDepth {
			return &domain.DependencyError{
				Message: fmt.Sprintf("folder %s: ancestor chain does not terminate", newParentID),
			}
		}
		if *current == folderID {
			return fmt.Errorf("%w: cannot move folder into its own subtree", domain.ErrValidation)
		}
		ancestor, err := s.folderRepo.GetByID(ctx, *current, ownerID)
		if err != nil {
			return err
		}
		current = ancestor.ParentID
	}

	return nil
}

func (s *folderService) releaseBlob(ctx context.Context, file *models.File) {
	if file.RemoteID == nil || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, *file.RemoteID); err != nil {
		s.logger.Warn("failed to release blob",
			"file_id", file.ID,
			"remote_id", *file.RemoteID,
			"error", err,
		)
	}
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.MoveParent {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		return validation.Validate(trimmed,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		)
	}

	return nil
}
