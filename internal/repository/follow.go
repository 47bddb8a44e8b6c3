package repository

import (
	"context"

	"threadly/internal/models"

	"gorm.io/gorm"
)

// FollowRepository persists follow edges.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followingID string) (models.ToggleOutcome, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Toggle(ctx context.Context, followerID, followingID string) (models.ToggleOutcome, error) {
	return toggle(ctx, r.db, func() *models.Follow {
		return &models.Follow{FollowerID: followerID, FollowingID: followingID}
	}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var followers, following int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return followers, following, nil
}
