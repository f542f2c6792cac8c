package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/auth"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	userByID        *models.User
	userByEmail     *models.User
	userByNameEmail *models.User
	allUsers        []models.User
	findErr         error
	createErr       error
	created         *models.User
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.userByID, nil
}

func (m *mockUserRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.userByNameEmail, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.userByEmail, nil
}

func (m *mockUserRepository) FindByNameOrEmail(ctx context.Context, name, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.userByNameEmail, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.allUsers, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService("test-secret", time.Hour)
}

func TestNewAuthService(t *testing.T) {
	userRepo := &mockUserRepository{}
	tokenService := newTestTokenService()

	svc := NewAuthService(userRepo, tokenService, zap.NewNop())

	assert.NotNil(t, svc)
	assert.Equal(t, userRepo, svc.userRepo)
	assert.Equal(t, tokenService, svc.tokenService)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		req          *models.RegisterRequest
		userRepo     *mockUserRepository
		expectedCode string
	}{
		{
			name:     "success",
			req:      &models.RegisterRequest{Name: "a", Email: "a@x.com", Password: "p"},
			userRepo: &mockUserRepository{},
		},
		{
			name: "duplicate name",
			req:  &models.RegisterRequest{Name: "a", Email: "new@x.com", Password: "p"},
			userRepo: &mockUserRepository{
				userByNameEmail: &models.User{ID: 5, Name: "a", Email: "old@x.com"},
			},
			expectedCode: apperrors.CodeNameAlreadyUsed,
		},
		{
			name: "duplicate email",
			req:  &models.RegisterRequest{Name: "new", Email: "a@x.com", Password: "p"},
			userRepo: &mockUserRepository{
				userByNameEmail: &models.User{ID: 5, Name: "a", Email: "a@x.com"},
			},
			expectedCode: apperrors.CodeEmailAlreadyUsed,
		},
		{
			name: "name takes precedence when both collide",
			req:  &models.RegisterRequest{Name: "a", Email: "a@x.com", Password: "p"},
			userRepo: &mockUserRepository{
				userByNameEmail: &models.User{ID: 5, Name: "a", Email: "a@x.com"},
			},
			expectedCode: apperrors.CodeNameAlreadyUsed,
		},
		{
			name: "store race surfaces the pre-check code",
			req:  &models.RegisterRequest{Name: "a", Email: "a@x.com", Password: "p"},
			userRepo: &mockUserRepository{
				createErr: apperrors.Validation(apperrors.CodeEmailAlreadyUsed),
			},
			expectedCode: apperrors.CodeEmailAlreadyUsed,
		},
		{
			name:         "store failure is internal",
			req:          &models.RegisterRequest{Name: "a", Email: "a@x.com", Password: "p"},
			userRepo:     &mockUserRepository{findErr: errors.New("connection refused")},
			expectedCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, newTestTokenService(), zap.NewNop())

			err := svc.Register(context.Background(), tt.req)

			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, tt.userRepo.created, "no write after a rejected pre-check")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, tt.userRepo.created)
			assert.Equal(t, models.RoleBlogger, tt.userRepo.created.Role)
			assert.Equal(t, "a", tt.userRepo.created.Name)
			assert.Equal(t, "a@x.com", tt.userRepo.created.Email)
			// The stored hash is never the plaintext and verifies against it
			assert.NotEqual(t, "p", tt.userRepo.created.PasswordHash)
			assert.True(t, auth.CheckPassword("p", tt.userRepo.created.PasswordHash))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := auth.HashPassword("Password123!")
	require.NoError(t, err)

	user := &models.User{ID: 1, Role: models.RoleBlogger, Name: "a", Email: "a@x.com", PasswordHash: passwordHash}

	tests := []struct {
		name         string
		req          *models.LoginRequest
		userRepo     *mockUserRepository
		expectedCode string
	}{
		{
			name:     "success",
			req:      &models.LoginRequest{Email: "a@x.com", Password: "Password123!"},
			userRepo: &mockUserRepository{userByEmail: user},
		},
		{
			name:         "unknown email",
			req:          &models.LoginRequest{Email: "nobody@x.com", Password: "Password123!"},
			userRepo:     &mockUserRepository{},
			expectedCode: apperrors.CodeBadCredentials,
		},
		{
			// Identical code for unknown email and wrong password
			name:         "wrong password",
			req:          &models.LoginRequest{Email: "a@x.com", Password: "wrong"},
			userRepo:     &mockUserRepository{userByEmail: user},
			expectedCode: apperrors.CodeBadCredentials,
		},
		{
			name:         "store failure is internal",
			req:          &models.LoginRequest{Email: "a@x.com", Password: "Password123!"},
			userRepo:     &mockUserRepository{findErr: errors.New("connection refused")},
			expectedCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := newTestTokenService()
			svc := NewAuthService(tt.userRepo, tokenService, zap.NewNop())

			token, err := svc.Login(context.Background(), tt.req)

			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.expectedCode), "got %v", err)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)

			// The issued token verifies and binds back to the user
			require.NoError(t, tokenService.Validate(token))
			userID, err := tokenService.ExtractUserID(token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, userID)
		})
	}
}
