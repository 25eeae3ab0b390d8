package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"focusportal/internal/config"
	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
	"focusportal/internal/domain/services"
	"focusportal/internal/filekind"
	"focusportal/internal/storage"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	kinds      *filekind.Registry
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	kinds *filekind.Registry,
	blobs storage.BlobStore,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		kinds:      kinds,
		blobs:      blobs,
		logger:     logger,
	}
}

// CreateFile registers an uploaded or app-created file. The content
// kind and the editable flag are derived from the file name's
// extension through the kind registry and never change afterwards.
func (s *fileService) CreateFile(ctx context.Context, req *services.CreateFileRequest) (*models.File, error) {
	req.FileName = strings.TrimSpace(req.FileName)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	def, err := s.kinds.FromFileName(req.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Target folder must exist and belong to the same owner
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.OwnerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	file := &models.File{
		OwnerID:   req.OwnerID,
		FolderID:  req.FolderID,
		FileName:  req.FileName,
		Kind:      string(def.ID),
		Source:    req.Source,
		Location:  req.Location,
		Size:      req.Size,
		MimeType:  def.MimeType,
		Editable:  def.Editable,
		RemoteID:  req.RemoteID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.FileName,
		"kind", file.Kind,
		"owner_id", file.OwnerID,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// UploadFile pushes a local file into blob storage and registers it.
// The registration reuses CreateFile so kind derivation and folder
// checks stay in one place; an orphaned blob from a failed
// registration is released again best-effort.
func (s *fileService) UploadFile(ctx context.Context, req *services.UploadFileRequest) (*models.File, error) {
	if s.blobs == nil {
		return nil, &domain.DependencyError{Message: "blob storage is not configured"}
	}

	stored, err := s.blobs.Store(ctx, req.LocalPath)
	if err != nil {
		return nil, &domain.DependencyError{Message: fmt.Sprintf("blob upload failed: %v", err)}
	}

	file, err := s.CreateFile(ctx, &services.CreateFileRequest{
		OwnerID:  req.OwnerID,
		FileName: req.FileName,
		Source:   models.FileSourceUpload,
		FolderID: req.FolderID,
		Location: stored.URL,
		Size:     req.Size,
		RemoteID: &stored.RemoteID,
	})
	if err != nil {
		if releaseErr := s.blobs.Delete(ctx, stored.RemoteID); releaseErr != nil {
			s.logger.Warn("failed to release orphaned blob",
				"remote_id", stored.RemoteID,
				"error", releaseErr,
			)
		}
		return nil, err
	}

	return file, nil
}

// GetFile retrieves a file by ID
func (s *fileService) GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, fileID, ownerID)
}

// UpdateFile renames and/or moves a file
func (s *fileService) UpdateFile(ctx context.Context, ownerID, fileID string, req *services.UpdateFileRequest) (*models.File, error) {
	if req.FileName == nil && !req.MoveFolder {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.FileName != nil {
		newName := strings.TrimSpace(*req.FileName)
		if err := validation.Validate(newName,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		file.FileName = preserveExtension(file.FileName, newName)
	}

	if req.MoveFolder {
		if req.FolderID != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, ownerID); err != nil {
				return nil, fmt.Errorf("target folder not found: %w", err)
			}
		}
		file.FolderID = req.FolderID
	}

	file.UpdatedAt = time.Now()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.FileName,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// UpdateFileContent replaces the stored content location of an
// editable file
func (s *fileService) UpdateFileContent(ctx context.Context, ownerID, fileID string, location string, size int64) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if !file.Editable {
		return nil, fmt.Errorf("%w: file kind %s is not editable", domain.ErrValidation, file.Kind)
	}

	file.Location = location
	file.Size = size
	file.UpdatedAt = time.Now()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file content updated", "id", file.ID, "size", size)

	return file, nil
}

// DeleteFile deletes a file and releases its blob best-effort
func (s *fileService) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return err
	}

	if file.RemoteID != nil && s.blobs != nil {
		if err := s.blobs.Delete(ctx, *file.RemoteID); err != nil {
			s.logger.Warn("failed to release blob",
				"file_id", file.ID,
				"remote_id", *file.RemoteID,
				"error", err,
			)
		}
	}

	if err := s.fileRepo.Delete(ctx, fileID, ownerID); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", fileID, "name", file.FileName)

	return nil
}

// preserveExtension keeps the original extension no matter what suffix
// the new base name carries: renaming "notes.pdf" to "report.txt"
// yields "report.txt.pdf".
func preserveExtension(oldName, newName string) string {
	ext := filepath.Ext(oldName)
	if ext == "" {
		return newName
	}
	if strings.EqualFold(filepath.Ext(newName), ext) {
		return newName
	}
	return newName + ext
}

// validateCreateRequest validates a file registration request
func (s *fileService) validateCreateRequest(req *services.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.FileName,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.Source,
			validation.Required,
			validation.In(models.FileSourceUpload, models.FileSourceCreated),
		),
	)
}
