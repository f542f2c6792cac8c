package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/middleware"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// PostService is the interface that wraps methods for post business logic
type PostService interface {
	// Method List returns every post the caller may see.
	//
	// "caller" parameter is the bound identity of the requesting user.
	//
	// If some error occurs during retrieval, the error will be returned
	// together with "nil" value.
	List(ctx context.Context, caller *models.Identity) ([]models.Post, error)
	// Method Create makes the caller the author of a new public post.
	//
	// "caller" parameter is the bound identity of the requesting user.
	// "req" parameter contains title and content.
	//
	// If a field is missing or duplicates an existing post, or some other
	// error occurs, the error will be returned together with "nil" value.
	Create(ctx context.Context, caller *models.Identity, req *models.CreatePostRequest) (*models.Post, error)
	// Method Update edits a post on behalf of its author.
	//
	// "caller" parameter is the bound identity of the requesting user.
	// "postID" parameter identifies the post.
	// "req" parameter contains title, content and the hidden flag.
	//
	// If the caller is not the author, the post is absent, or a field is
	// missing, the error will be returned together with "nil" value.
	Update(ctx context.Context, caller *models.Identity, postID int, req *models.UpdatePostRequest) (*models.Post, error)
	// Method Delete removes a post.
	//
	// "caller" parameter is the bound identity of the requesting user.
	// "postID" parameter identifies the post.
	//
	// If the caller may not delete the post, or the post is absent, the
	// error will be returned.
	Delete(ctx context.Context, caller *models.Identity, postID int) error
}

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	BaseHandler
	postService PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler: BaseHandler{Logger: logger},
		postService: postService,
	}
}

// RegisterRoutes registers all post handler routes; every route requires a
// bearer token
func (h *PostHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/posts", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /posts
// @Summary List posts
// @Description List all public posts plus the caller's own hidden posts
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Post "Visible posts"
// @Failure 401 {object} map[string]string "Authentication failure"
// @Router /posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentity(r.Context())

	posts, err := h.postService.List(r.Context(), caller)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	h.RespondJSON(w, http.StatusOK, posts)
}

// Create handles POST /posts
// @Summary Create a post
// @Description Create a public post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreatePostRequest true "Post creation request"
// @Success 204 "Post created successfully"
// @Failure 400 {object} map[string]string "Missing or duplicate field"
// @Failure 401 {object} map[string]string "Authentication failure"
// @Router /posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return
	}

	caller := middleware.GetIdentity(r.Context())

	if _, err := h.postService.Create(r.Context(), caller, &req); err != nil {
		h.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Update handles POST /posts/{id}
// @Summary Edit a post
// @Description Edit a post's title, content and hidden flag. Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param request body models.UpdatePostRequest true "Post edit request"
// @Success 200 {object} models.Post "Updated post"
// @Failure 400 {object} map[string]string "Missing field"
// @Failure 403 {object} map[string]string "Caller is not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [post]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY")
		return
	}

	caller := middleware.GetIdentity(r.Context())

	post, err := h.postService.Update(r.Context(), caller, postID, &req)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
// @Summary Delete a post
// @Description Delete a post. Authors delete their own posts unconditionally;
// @Description administrators delete other authors' posts only while public.
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 "Post deleted"
// @Failure 403 {object} map[string]string "Caller may not delete this post"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	caller := middleware.GetIdentity(r.Context())

	if err := h.postService.Delete(r.Context(), caller, postID); err != nil {
		h.RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parsePostID reads the {id} route parameter
func parsePostID(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, apperrors.Validation(apperrors.CodePostIDRequired)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(apperrors.CodePostIDRequired)
	}
	return id, nil
}
