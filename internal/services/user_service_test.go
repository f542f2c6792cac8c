package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

func TestUserService_List(t *testing.T) {
	admin := models.User{ID: 1, Role: models.RoleAdmin, Name: "root", Email: "root@x.com"}
	blogger := models.User{ID: 2, Role: models.RoleBlogger, Name: "a", Email: "a@x.com"}

	tests := []struct {
		name     string
		caller   *models.Identity
		userRepo *mockUserRepository
		expected []models.UserListItem
		wantErr  bool
	}{
		{
			name:     "admin caller sees everyone with ids",
			caller:   &models.Identity{User: &admin},
			userRepo: &mockUserRepository{allUsers: []models.User{admin, blogger}},
			expected: []models.UserListItem{
				{ID: 1, Name: "root", Email: "root@x.com"},
				{ID: 2, Name: "a", Email: "a@x.com"},
			},
		},
		{
			name:     "blogger caller sees redacted non-admins",
			caller:   &models.Identity{User: &blogger},
			userRepo: &mockUserRepository{allUsers: []models.User{admin, blogger}},
			expected: []models.UserListItem{
				{Name: "a", Email: "a@x.com"},
			},
		},
		{
			name:     "store failure",
			caller:   &models.Identity{User: &blogger},
			userRepo: &mockUserRepository{findErr: errors.New("connection refused")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, zap.NewNop())

			items, err := svc.List(context.Background(), tt.caller)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestUserService_CreateUser_NotImplemented(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, zap.NewNop())
	caller := &models.Identity{User: &models.User{ID: 1, Role: models.RoleAdmin}}

	err := svc.CreateUser(context.Background(), caller, &models.CreateUserRequest{
		Role:     models.RoleAdmin,
		Name:     "b",
		Email:    "b@x.com",
		Password: "p",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeAdminCreationNotImplemented))
	assert.Equal(t, apperrors.KindNotImplemented, apperrors.From(err).Kind)
}
