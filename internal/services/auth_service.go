package services

import (
	"context"

	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/auth"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method FindByID retrieves a user by ID.
	//
	// "id" parameter is used to identify the user.
	//
	// If no user with such ID exists, "nil" is returned without an error.
	FindByID(ctx context.Context, id int) (*models.User, error)
	// Method FindByName retrieves a user by name.
	//
	// "name" parameter is used to identify the user.
	//
	// If no user with such name exists, "nil" is returned without an error.
	FindByName(ctx context.Context, name string) (*models.User, error)
	// Method FindByEmail retrieves a user by email.
	//
	// "email" parameter is used to identify the user.
	//
	// If no user with such email exists, "nil" is returned without an error.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Method FindByNameOrEmail retrieves a user matching either field, used
	// by the registration duplicate pre-check.
	//
	// "name" and "email" parameters are matched against their columns.
	//
	// If no user matches, "nil" is returned without an error.
	FindByNameOrEmail(ctx context.Context, name, email string) (*models.User, error)
	// Method FindAll retrieves every user.
	//
	// If some error occurs during retrieval, the error will be returned
	// together with "nil" value.
	FindAll(ctx context.Context) ([]models.User, error)
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// A unique constraint violation is returned as the matching domain error.
	Create(ctx context.Context, user *models.User) error
}

// authService implements registration and login
type authService struct {
	userRepo     UserRepository
	tokenService *auth.TokenService
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenService *auth.TokenService, logger *zap.Logger) *authService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a new blogger account. Name and email are each globally
// unique; the pre-check here and the store's unique constraints surface the
// same domain code either way.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	return s.createUser(ctx, models.RoleBlogger, req.Name, req.Email, req.Password)
}

// createUser is shared between self-registration and the future privileged
// creation path
func (s *authService) createUser(ctx context.Context, role models.Role, name, email, password string) error {
	similar, err := s.userRepo.FindByNameOrEmail(ctx, name, email)
	if err != nil {
		return apperrors.Internal(err)
	}
	if similar != nil {
		if similar.Name == name {
			return apperrors.Validation(apperrors.CodeNameAlreadyUsed)
		}
		return apperrors.Validation(apperrors.CodeEmailAlreadyUsed)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return apperrors.Internal(err)
	}

	user := &models.User{
		Role:         role,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return apperrors.From(err)
	}

	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password produce the same code so neither can be probed.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if user == nil {
		return "", apperrors.Authentication(apperrors.CodeBadCredentials)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return "", apperrors.Authentication(apperrors.CodeBadCredentials)
	}

	token, err := s.tokenService.Generate(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Int("userId", user.ID), zap.Error(err))
		return "", apperrors.Internal(err)
	}

	return token, nil
}
