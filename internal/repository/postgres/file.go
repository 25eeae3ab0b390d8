package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = "id, owner_id, folder_id, file_name, kind, source, location, size, mime_type, editable, remote_id, created_at, updated_at"

func scanFile(row interface{ Scan(...interface{}) error }, f *models.File) error {
	return row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.FolderID,
		&f.FileName,
		&f.Kind,
		&f.Source,
		&f.Location,
		&f.Size,
		&f.MimeType,
		&f.Editable,
		&f.RemoteID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
}

// Create creates a new file document
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, folder_id, file_name, kind, source, location, size, mime_type, editable, remote_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, r.tables.Files)

	err := r.pool.QueryRow(ctx, query,
		file.ID,
		file.OwnerID,
		file.FolderID,
		file.FileName,
		file.Kind,
		file.Source,
		file.Location,
		file.Size,
		file.MimeType,
		file.Editable,
		file.RemoteID,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder for file '%s': %w", file.FileName, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, scoped to its owner
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, fileColumns, r.tables.Files)

	var file models.File
	if err := scanFile(r.pool.QueryRow(ctx, query, id, ownerID), &file); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update persists file name, folder, and content-location changes
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, file_name = $2, location = $3, size = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query,
		file.FolderID,
		file.FileName,
		file.Location,
		file.Size,
		file.UpdatedAt,
		file.ID,
		file.OwnerID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder for file %s: %w", file.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a single file document
func (r *PostgresFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files directly inside a folder (nil = root)
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id IS NULL
			ORDER BY file_name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id = $2
			ORDER BY file_name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID, *folderID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
