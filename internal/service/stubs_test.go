package service

import (
	"context"
	"errors"
	"testing"

	"threadly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	existsFn        func(context.Context, string, string) (bool, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return s.existsFn(ctx, username, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		},
		existsFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = models.NewID()
			return nil
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

type followRepoStub struct {
	toggleFn      func(context.Context, string, string) (models.ToggleOutcome, error)
	isFollowingFn func(context.Context, string, string) (bool, error)
	countsFn      func(context.Context, string) (int64, int64, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followingID string) (models.ToggleOutcome, error) {
	return s.toggleFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID string) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:      func(context.Context, string, string) (models.ToggleOutcome, error) { return models.ToggleAdded, nil },
		isFollowingFn: func(context.Context, string, string) (bool, error) { return false, nil },
		countsFn:      func(context.Context, string) (int64, int64, error) { return 0, 0, nil },
	}
}

type postRepoStub struct {
	createFn           func(context.Context, *models.Post) error
	getByIDFn          func(context.Context, string) (*models.Post, error)
	getWithRelationsFn func(context.Context, string) (*models.Post, error)
	deleteFn           func(context.Context, string) error
	toggleLikeFn       func(context.Context, string, string) (models.ToggleOutcome, error)
	countLikesFn       func(context.Context, string) (int64, error)
	createReplyFn      func(context.Context, *models.Reply) error
	feedFn             func(context.Context, string, int, int) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetWithRelations(ctx context.Context, id string) (*models.Post, error) {
	return s.getWithRelationsFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID string) (models.ToggleOutcome, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID string) (int64, error) {
	return s.countLikesFn(ctx, postID)
}
func (s *postRepoStub) CreateReply(ctx context.Context, reply *models.Reply) error {
	return s.createReplyFn(ctx, reply)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID string, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, viewerID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = models.NewID()
			return nil
		},
		getByIDFn: func(_ context.Context, _ string) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post")
		},
		getWithRelationsFn: func(_ context.Context, _ string) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post")
		},
		deleteFn:     func(context.Context, string) error { return nil },
		toggleLikeFn: func(context.Context, string, string) (models.ToggleOutcome, error) { return models.ToggleAdded, nil },
		countLikesFn: func(context.Context, string) (int64, error) { return 0, nil },
		createReplyFn: func(_ context.Context, r *models.Reply) error {
			r.ID = models.NewID()
			return nil
		},
		feedFn: func(context.Context, string, int, int) ([]*models.Post, error) { return nil, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code and message.
// An empty message skips the message check.
func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
