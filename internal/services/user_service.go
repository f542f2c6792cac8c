package services

import (
	"context"

	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// userService implements the user directory and the privileged creation stub
type userService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns the user directory as the caller is allowed to see it: full
// rows including ids for administrators, redacted non-admin rows for everyone
// else.
func (s *userService) List(ctx context.Context, caller *models.Identity) ([]models.UserListItem, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return FilterUsersForCaller(caller.User, users), nil
}

// CreateUser is the privileged user-creation operation. The admin gate in
// front of it is real; the operation itself is an extension point that is
// not implemented yet.
func (s *userService) CreateUser(ctx context.Context, caller *models.Identity, req *models.CreateUserRequest) error {
	return apperrors.NotImplemented(apperrors.CodeAdminCreationNotImplemented)
}
