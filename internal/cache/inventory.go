package cache

import (
	"context"
	"time"
)

const postViewKeyPrefix = "post:view:"

// PostViewTTL bounds how stale a cached post read can be if an invalidation is missed.
const PostViewTTL = 5 * time.Minute

// PostViewKey is the cache key for the public read of a post.
func PostViewKey(postID string) string {
	return postViewKeyPrefix + postID
}

// Invalidate deletes key. Failures are ignored; the TTL bounds staleness.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached read of postID.
func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostViewKey(postID))
}

// InvalidatePosts drops the cached reads of every post in postIDs.
func InvalidatePosts(ctx context.Context, postIDs ...string) {
	if client == nil || len(postIDs) == 0 {
		return
	}
	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = PostViewKey(id)
	}
	client.Del(ctx, keys...)
}
