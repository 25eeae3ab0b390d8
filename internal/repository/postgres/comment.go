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

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const commentColumns = "id, question_id, author_id, content, upvoted_by, downvoted_by, created_at, updated_at"

func scanComment(row interface{ Scan(...interface{}) error }, c *models.Comment) error {
	return row.Scan(
		&c.ID,
		&c.QuestionID,
		&c.AuthorID,
		&c.Content,
		&c.UpvotedBy,
		&c.DownvotedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create creates a new comment attached to a question
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, question_id, author_id, content, upvoted_by, downvoted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, r.tables.Comments)

	err := r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.QuestionID,
		comment.AuthorID,
		comment.Content,
		comment.UpvotedBy,
		comment.DownvotedBy,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("question %s: %w", comment.QuestionID, domain.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, commentColumns, r.tables.Comments)

	var comment models.Comment
	if err := scanComment(r.pool.QueryRow(ctx, query, id), &comment); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

// ListByQuestion retrieves a question's comments oldest first
func (r *PostgresCommentRepository) ListByQuestion(ctx context.Context, questionID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE question_id = $1
		ORDER BY created_at ASC
	`, commentColumns, r.tables.Comments)

	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := scanComment(rows, &comment); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// Update persists content changes
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Comments)

	result, err := r.pool.Exec(ctx, query,
		comment.Content,
		comment.UpdatedAt,
		comment.ID,
	)

	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a comment document
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Comments)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByQuestion removes all comments attached to a question
func (r *PostgresCommentRepository) DeleteByQuestion(ctx context.Context, questionID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE question_id = $1
	`, r.tables.Comments)

	if _, err := r.pool.Exec(ctx, query, questionID); err != nil {
		return fmt.Errorf("delete question comments: %w", err)
	}

	return nil
}

// SetVote moves the actor into the requested vote set (see question
// repository for the transition semantics)
func (r *PostgresCommentRepository) SetVote(ctx context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error) {
	return applyVote(ctx, r.pool, r.tables.Comments, id, actorID, string(direction))
}

// ClearVote removes the actor from both vote sets
func (r *PostgresCommentRepository) ClearVote(ctx context.Context, id, actorID string) (*models.VoteCounts, error) {
	return applyVote(ctx, r.pool, r.tables.Comments, id, actorID, "")
}
