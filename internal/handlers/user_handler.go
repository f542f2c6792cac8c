package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thirteenmd/back-end-task/internal/middleware"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register creates a new blogger account.
	//
	// "req" parameter contains name, email and password.
	//
	// If the name or email is already used, or some other error occurs, the
	// error will be returned.
	Register(ctx context.Context, req *models.RegisterRequest) error
	// Method Login verifies the credentials and issues a bearer token.
	//
	// "req" parameter contains email and password.
	//
	// If the credentials are incorrect, or some other error occurs, the
	// error will be returned together with an empty token.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}

// UserService is the interface that wraps methods for the user directory
type UserService interface {
	// Method List returns the user directory as the caller may see it.
	//
	// "caller" parameter is the bound identity of the requesting user.
	//
	// If some error occurs during retrieval, the error will be returned
	// together with "nil" value.
	List(ctx context.Context, caller *models.Identity) ([]models.UserListItem, error)
	// Method CreateUser is the privileged user-creation operation.
	//
	// "caller" parameter is the bound identity of the requesting user.
	// "req" parameter contains role, name, email and password.
	//
	// The operation is not implemented yet and always returns an error.
	CreateUser(ctx context.Context, caller *models.Identity, req *models.CreateUserRequest) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	BaseHandler
	authService AuthService
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService AuthService, userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes.
// Registration and login are public; the directory requires a bearer token
// and privileged creation additionally passes the admin gate.
func (h *UserHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", h.List)
			r.With(middleware.RequireAdmin).Post("/", h.Create)
		})
	})
}

// Register handles POST /users/register
// @Summary Register a new user
// @Description Register a new blogger account with name, email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 204 "User registered successfully"
// @Failure 400 {object} map[string]string "Name or email already used"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		h.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /users/login
// @Summary Login
// @Description Authenticate with email and password, returns a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Bearer token"
// @Failure 401 {object} map[string]string "Email or password incorrect"
// @Router /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// List handles GET /users
// @Summary List users
// @Description List the user directory. Administrators see ids and other
// @Description administrators; everyone else sees redacted non-admin rows.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserListItem "User directory"
// @Failure 401 {object} map[string]string "Authentication failure"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentity(r.Context())

	users, err := h.userService.List(r.Context(), caller)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// Create handles POST /users
// @Summary Create a user (admin)
// @Description Privileged user creation. Gated on the administrator role;
// @Description the operation itself is not implemented yet.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Failure 401 {object} map[string]string "Authentication failure"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 501 {object} map[string]string "Not implemented"
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return
	}

	caller := middleware.GetIdentity(r.Context())

	if err := h.userService.CreateUser(r.Context(), caller, &req); err != nil {
		h.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
