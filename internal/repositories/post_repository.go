package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// postRepository implements post data access
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

const postColumns = `id, title, content, author_id, is_hidden, created_at, updated_at`

// scanPost scans a single post row
func scanPost(row *sql.Row) (*models.Post, error) {
	post := &models.Post{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.IsHidden,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindByID retrieves a post by ID. Returns nil without error when absent.
func (r *postRepository) FindByID(ctx context.Context, id int) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		r.logger.Error("failed to find post by id", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to find post by id: %w", err)
	}

	return post, nil
}

// FindByTitleOrContent retrieves a post matching either the title or the
// content, used by the creation duplicate pre-check
func (r *postRepository) FindByTitleOrContent(ctx context.Context, title, content string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE title = ? OR content = ? LIMIT 1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, title, content))
	if err != nil {
		r.logger.Error("failed to find post by title or content", zap.Error(err))
		return nil, fmt.Errorf("failed to find post by title or content: %w", err)
	}

	return post, nil
}

// FindVisible retrieves every public post plus the hidden posts authored by
// the caller. Public posts come first, matching the historical ordering.
func (r *postRepository) FindVisible(ctx context.Context, callerID int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE is_hidden = FALSE OR author_id = ?
		ORDER BY is_hidden, id
	`

	rows, err := r.db.QueryContext(ctx, query, callerID)
	if err != nil {
		r.logger.Error("failed to list visible posts", zap.Int("callerId", callerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list visible posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.AuthorID,
			&post.IsHidden,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Create inserts a new post. A unique constraint violation that slipped past
// the pre-check is surfaced as the same domain code the pre-check would have
// produced.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, author_id, is_hidden)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.AuthorID, post.IsHidden)
	if err != nil {
		if code, ok := duplicatePostCode(err); ok {
			return apperrors.Validation(code)
		}
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	post.ID = int(id)
	return nil
}

// Update writes the post's title, content and hidden flag
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = ?, content = ?, is_hidden = ?, updated_at = NOW()
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.IsHidden, post.ID); err != nil {
		if code, ok := duplicatePostCode(err); ok {
			return apperrors.Validation(code)
		}
		r.logger.Error("failed to update post", zap.Int("id", post.ID), zap.Error(err))
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// Delete removes a post by ID
func (r *postRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM posts WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete post", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// duplicatePostCode maps a MySQL duplicate-entry error on the posts table to
// the corresponding domain code, keyed on the violated index name
func duplicatePostCode(err error) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return "", false
	}
	switch {
	case strings.Contains(mysqlErr.Message, "uq_posts_title"):
		return apperrors.CodeTitleAlreadyExists, true
	case strings.Contains(mysqlErr.Message, "uq_posts_content"):
		return apperrors.CodeContentAlreadyExists, true
	default:
		return "", false
	}
}
