package models

import "time"

// Role is the coarse capability level of a user
type Role string

// User roles. New accounts default to RoleBlogger.
const (
	RoleAdmin   Role = "admin"
	RoleBlogger Role = "blogger"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBlogger
}

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin is the role gate predicate used to guard privileged operations
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserListItem is a single row of the user directory. ID is omitted for
// non-admin callers, which only ever see name and email.
type UserListItem struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterRequest represents a self-registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents a privileged user-creation request
type CreateUserRequest struct {
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
