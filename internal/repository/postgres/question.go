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

// PostgresQuestionRepository implements the QuestionRepository interface.
// Vote sets are stored as text[] columns; vote transitions are single
// statements so concurrent votes by different actors never lose each
// other's membership.
type PostgresQuestionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(config *RepositoryConfig) repositories.QuestionRepository {
	return &PostgresQuestionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const questionColumns = "id, author_id, title, content, category, tags, images, upvoted_by, downvoted_by, status, created_at, updated_at"

func scanQuestion(row interface{ Scan(...interface{}) error }, q *models.Question) error {
	return row.Scan(
		&q.ID,
		&q.AuthorID,
		&q.Title,
		&q.Content,
		&q.Category,
		&q.Tags,
		&q.Images,
		&q.UpvotedBy,
		&q.DownvotedBy,
		&q.Status,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
}

// Create creates a new question
func (r *PostgresQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, author_id, title, content, category, tags, images, upvoted_by, downvoted_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, r.tables.Questions)

	err := r.pool.QueryRow(ctx, query,
		question.ID,
		question.AuthorID,
		question.Title,
		question.Content,
		question.Category,
		question.Tags,
		question.Images,
		question.UpvotedBy,
		question.DownvotedBy,
		question.Status,
		question.CreatedAt,
		question.UpdatedAt,
	).Scan(&question.CreatedAt, &question.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// GetByID retrieves a question by ID
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, questionColumns, r.tables.Questions)

	var question models.Question
	if err := scanQuestion(r.pool.QueryRow(ctx, query, id), &question); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &question, nil
}

// List retrieves questions newest first, optionally filtered
func (r *PostgresQuestionRepository) List(ctx context.Context, filter repositories.QuestionFilter) ([]models.Question, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR $2 = ANY(tags))
		ORDER BY created_at DESC
		LIMIT $3
	`, questionColumns, r.tables.Questions)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Tag, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		if err := scanQuestion(rows, &question); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// Update persists title, content, category, tags, images, status
func (r *PostgresQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, category = $3, tags = $4, images = $5, status = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.Questions)

	result, err := r.pool.Exec(ctx, query,
		question.Title,
		question.Content,
		question.Category,
		question.Tags,
		question.Images,
		question.Status,
		question.UpdatedAt,
		question.ID,
	)

	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", question.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a question document
func (r *PostgresQuestionRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Questions)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetVote strips the actor from both vote sets and appends them to the
// requested one, all in one statement. Repeating the same vote is a
// no-op; the statement is self-correcting regardless of prior state.
func (r *PostgresQuestionRepository) SetVote(ctx context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error) {
	return applyVote(ctx, r.pool, r.tables.Questions, id, actorID, string(direction))
}

// ClearVote removes the actor from both vote sets
func (r *PostgresQuestionRepository) ClearVote(ctx context.Context, id, actorID string) (*models.VoteCounts, error) {
	return applyVote(ctx, r.pool, r.tables.Questions, id, actorID, "")
}

// applyVote is shared by question and comment vote updates. An empty
// direction clears the actor's vote.
func applyVote(ctx context.Context, pool *pgxpool.Pool, table, id, actorID, direction string) (*models.VoteCounts, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET upvoted_by = CASE WHEN $2 = 'up'
				THEN array_append(array_remove(upvoted_by, $3), $3)
				ELSE array_remove(upvoted_by, $3) END,
		    downvoted_by = CASE WHEN $2 = 'down'
				THEN array_append(array_remove(downvoted_by, $3), $3)
				ELSE array_remove(downvoted_by, $3) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING cardinality(upvoted_by), cardinality(downvoted_by)
	`, table)

	var counts models.VoteCounts
	err := pool.QueryRow(ctx, query, id, direction, actorID).Scan(&counts.Upvotes, &counts.Downvotes)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("votable %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("apply vote: %w", err)
	}

	return &counts, nil
}
