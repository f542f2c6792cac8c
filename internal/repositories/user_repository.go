// Package repositories implements data access for users and posts on top of
// database/sql. Absence is reported as a nil record with a nil error; every
// other failure is a wrapped store error.
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

// mysqlDuplicateEntry is the MySQL error number for unique constraint violations
const mysqlDuplicateEntry = 1062

// userRepository implements user data access
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, role, name, email, password_hash, created_at, updated_at`

// scanUser scans a single user row
func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Role,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user by ID. Returns nil without error when absent.
func (r *userRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		r.logger.Error("failed to find user by id", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return user, nil
}

// FindByName retrieves a user by name. Returns nil without error when absent.
func (r *userRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		r.logger.Error("failed to find user by name", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by email. Returns nil without error when absent.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		r.logger.Error("failed to find user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// FindByNameOrEmail retrieves a user matching either the name or the email,
// used by the registration duplicate pre-check
func (r *userRepository) FindByNameOrEmail(ctx context.Context, name, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = ? OR email = ? LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, name, email))
	if err != nil {
		r.logger.Error("failed to find user by name or email", zap.Error(err))
		return nil, fmt.Errorf("failed to find user by name or email: %w", err)
	}

	return user, nil
}

// FindAll retrieves every user, newest last
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Role,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Create inserts a new user. A unique constraint violation that slipped past
// the pre-check is surfaced as the same domain code the pre-check would have
// produced.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (role, name, email, password_hash)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Role, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		if code, ok := duplicateUserCode(err); ok {
			return apperrors.Validation(code)
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// duplicateUserCode maps a MySQL duplicate-entry error on the users table to
// the corresponding domain code, keyed on the violated index name
func duplicateUserCode(err error) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return "", false
	}
	switch {
	case strings.Contains(mysqlErr.Message, "uq_users_name"):
		return apperrors.CodeNameAlreadyUsed, true
	case strings.Contains(mysqlErr.Message, "uq_users_email"):
		return apperrors.CodeEmailAlreadyUsed, true
	default:
		return "", false
	}
}
