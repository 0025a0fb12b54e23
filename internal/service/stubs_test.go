package service

import (
	"context"
	"testing"

	"bloglist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByIDFn       func(ctx context.Context, id string) (*models.User, error)
	appendBlogFn    func(ctx context.Context, userID, blogID string) error
	listFn          func(ctx context.Context) ([]models.UserWithBlogs, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, user *models.User) error {
			user.ID = "user-1"
			return nil
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByIDFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		appendBlogFn:    func(context.Context, string, string) error { return nil },
		listFn:          func(context.Context) ([]models.UserWithBlogs, error) { return nil, nil },
	}
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) AppendBlog(ctx context.Context, userID, blogID string) error {
	return s.appendBlogFn(ctx, userID, blogID)
}

func (s *userRepoStub) List(ctx context.Context) ([]models.UserWithBlogs, error) {
	return s.listFn(ctx)
}

type blogRepoStub struct {
	createFn      func(ctx context.Context, blog *models.Blog) error
	listFn        func(ctx context.Context) ([]models.BlogWithOwner, error)
	getByIDFn     func(ctx context.Context, id string) (*models.Blog, error)
	updateLikesFn func(ctx context.Context, id string, likes int) (*models.BlogWithOwner, error)
	deleteFn      func(ctx context.Context, id string) error
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn: func(_ context.Context, blog *models.Blog) error {
			blog.ID = "blog-1"
			return nil
		},
		listFn:        func(context.Context) ([]models.BlogWithOwner, error) { return nil, nil },
		getByIDFn:     func(context.Context, string) (*models.Blog, error) { return nil, nil },
		updateLikesFn: func(context.Context, string, int) (*models.BlogWithOwner, error) { return nil, nil },
		deleteFn:      func(context.Context, string) error { return nil },
	}
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}

func (s *blogRepoStub) List(ctx context.Context) ([]models.BlogWithOwner, error) {
	return s.listFn(ctx)
}

func (s *blogRepoStub) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}

func (s *blogRepoStub) UpdateLikes(ctx context.Context, id string, likes int) (*models.BlogWithOwner, error) {
	return s.updateLikesFn(ctx, id, likes)
}

func (s *blogRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func assertAppErrorKind(t *testing.T, err error, kind models.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := models.AsAppError(err)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, kind, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func intPtr(v int) *int { return &v }
