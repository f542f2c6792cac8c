package services

import (
	"context"

	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/models"
	"go.uber.org/zap"
)

// PostRepository is the interface that wraps methods for Post table data access
type PostRepository interface {
	// Method FindByID retrieves a post by ID.
	//
	// "id" parameter is used to identify the post.
	//
	// If no post with such ID exists, "nil" is returned without an error.
	FindByID(ctx context.Context, id int) (*models.Post, error)
	// Method FindByTitleOrContent retrieves a post matching either field,
	// used by the creation duplicate pre-check.
	//
	// "title" and "content" parameters are matched against their columns.
	//
	// If no post matches, "nil" is returned without an error.
	FindByTitleOrContent(ctx context.Context, title, content string) (*models.Post, error)
	// Method FindVisible retrieves every public post plus the hidden posts
	// authored by the caller.
	//
	// "callerID" parameter identifies the caller whose hidden posts are included.
	//
	// If some error occurs during retrieval, the error will be returned
	// together with "nil" value.
	FindVisible(ctx context.Context, callerID int) ([]models.Post, error)
	// Method Create inserts a new post into the database.
	//
	// "post" parameter is used to create a new post; its ID is set on success.
	//
	// A unique constraint violation is returned as the matching domain error.
	Create(ctx context.Context, post *models.Post) error
	// Method Update writes the post's title, content and hidden flag.
	//
	// "post" parameter carries the new field values.
	//
	// If some error occurs during update, the error will be returned.
	Update(ctx context.Context, post *models.Post) error
	// Method Delete removes a post by ID.
	//
	// "id" parameter is used to identify the post.
	//
	// If some error occurs during deletion, the error will be returned.
	Delete(ctx context.Context, id int) error
}

// postService implements the post access policy over the post repository
type postService struct {
	postRepo PostRepository
	logger   *zap.Logger
	// uniqueContent applies the historical rule that post bodies are
	// globally unique. See config.PostsConfig.
	uniqueContent bool
}

// NewPostService creates a new post service
func NewPostService(postRepo PostRepository, logger *zap.Logger, uniqueContent bool) *postService {
	return &postService{
		postRepo:      postRepo,
		logger:        logger,
		uniqueContent: uniqueContent,
	}
}

// List returns every post the caller may see: all public posts plus the
// caller's own hidden posts
func (s *postService) List(ctx context.Context, caller *models.Identity) ([]models.Post, error) {
	posts, err := s.postRepo.FindVisible(ctx, caller.UserID())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return posts, nil
}

// Create makes the caller the author of a new public post. Title is checked
// for duplicates before content when both collide.
func (s *postService) Create(ctx context.Context, caller *models.Identity, req *models.CreatePostRequest) (*models.Post, error) {
	if req.Title == "" {
		return nil, apperrors.Validation(apperrors.CodeTitleRequired)
	}
	if req.Content == "" {
		return nil, apperrors.Validation(apperrors.CodeContentRequired)
	}

	similar, err := s.postRepo.FindByTitleOrContent(ctx, req.Title, req.Content)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if similar != nil {
		if similar.Title == req.Title {
			return nil, apperrors.Validation(apperrors.CodeTitleAlreadyExists)
		}
		if s.uniqueContent && similar.Content == req.Content {
			return nil, apperrors.Validation(apperrors.CodeContentAlreadyExists)
		}
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: caller.UserID(),
		IsHidden: false,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperrors.From(err)
	}

	return post, nil
}

// Update edits a post. Only the author may update, administrators included
// among the rejected; title and content must both be present, and the hidden
// flag is applied only when supplied and changed.
func (s *postService) Update(ctx context.Context, caller *models.Identity, postID int, req *models.UpdatePostRequest) (*models.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperrors.Validation(apperrors.CodeTitleAndContentRequired)
	}
	if postID <= 0 {
		return nil, apperrors.Validation(apperrors.CodePostIDRequired)
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if post == nil {
		return nil, apperrors.NotFound(apperrors.CodePostNotFound)
	}

	if !CanUpdatePost(caller.User, post) {
		return nil, apperrors.Authorization(apperrors.CodeUnauthorized)
	}

	post.Title = req.Title
	post.Content = req.Content
	if req.IsHidden != nil && *req.IsHidden != post.IsHidden {
		post.IsHidden = *req.IsHidden
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, apperrors.From(err)
	}

	return post, nil
}

// Delete removes a post. The author may delete unconditionally; an
// administrator may delete another author's post only while it is public.
func (s *postService) Delete(ctx context.Context, caller *models.Identity, postID int) error {
	if postID <= 0 {
		return apperrors.Validation(apperrors.CodePostIDRequired)
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if post == nil {
		return apperrors.NotFound(apperrors.CodePostNotFound)
	}

	if !CanDeletePost(caller.User, post) {
		return apperrors.Authorization(apperrors.CodeUnauthorized)
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
