package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"threadly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "hello", time.Now())

	before, err := repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)

	outcome, err := repo.ToggleLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleAdded, outcome)

	liked, err := repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, liked)

	outcome, err = repo.ToggleLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleRemoved, outcome)

	after, err := repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPostRepository_GetWithRelations(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "hello", time.Now())

	_, err := repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateReply(ctx, &models.Reply{
		PostID: post.ID, UserID: bob.ID, Text: "hi", Username: "bob", UserProfilePic: "old.png",
	}))

	// Later profile edits do not rewrite the reply snapshot.
	require.NoError(t, db.Model(bob).Updates(map[string]any{"username": "robert", "profile_pic": "new.png"}).Error)

	got, err := repo.GetWithRelations(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.PostedBy.Username)
	assert.Equal(t, int64(1), got.LikeCount)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, "robert", got.Likes[0].User.Username)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, "bob", got.Replies[0].Username)
	assert.Equal(t, "old.png", got.Replies[0].UserProfilePic)

	_, err = repo.GetWithRelations(ctx, "missing")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_DeleteRemovesLikesAndReplies(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	doomed := createPost(t, db, alice, "doomed", time.Now())
	kept := createPost(t, db, alice, "kept", time.Now())

	for _, p := range []*models.Post{doomed, kept} {
		_, err := repo.ToggleLike(ctx, p.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, repo.CreateReply(ctx, &models.Reply{PostID: p.ID, UserID: bob.ID, Text: "reply", Username: "bob"}))
	}

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	assert.Zero(t, countRows(t, db, &models.Post{}, "id = ?", doomed.ID))
	assert.Zero(t, countRows(t, db, &models.Like{}, "post_id = ?", doomed.ID))
	assert.Zero(t, countRows(t, db, &models.Reply{}, "post_id = ?", doomed.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Like{}, "post_id = ?", kept.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Reply{}, "post_id = ?", kept.ID))

	err := repo.Delete(ctx, doomed.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_Feed(t *testing.T) {
	db := setupSQLite(t)
	posts := NewPostRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	older := createPost(t, db, bob, "older", base)
	newer := createPost(t, db, bob, "newer", base.Add(time.Minute))
	createPost(t, db, carol, "not followed", base.Add(2*time.Minute))
	createPost(t, db, alice, "own post", base.Add(3*time.Minute))

	feed, err := posts.Feed(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = posts.ToggleLike(ctx, newer.ID, carol.ID)
	require.NoError(t, err)

	feed, err = posts.Feed(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	assert.Equal(t, int64(1), feed[0].LikeCount)
	assert.Equal(t, "bob", feed[0].PostedBy.Username)

	page, err := posts.Feed(ctx, alice.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, older.ID, page[0].ID)

	_, err = follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	feed, err = posts.Feed(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
