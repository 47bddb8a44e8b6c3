// Package notifications publishes activity events to per-user Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published to recipients.
const (
	EventFollowed  = "user_followed"
	EventPostLiked = "post_liked"
	EventReplied   = "post_replied"
)

// Event is the JSON payload sent on a user's channel.
type Event struct {
	Type          string    `json:"type"`
	ActorID       string    `json:"actorId"`
	ActorUsername string    `json:"actorUsername"`
	PostID        string    `json:"postId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Notifier provides helpers to publish notifications into Redis channels.
// A Notifier without a client is a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID string) string {
	return "notifications:user:" + userID
}

// PublishUser sends ev to recipientID's channel. Events a user triggers on
// their own content are dropped.
func (n *Notifier) PublishUser(ctx context.Context, recipientID string, ev Event) error {
	if n == nil || n.rdb == nil || recipientID == "" || recipientID == ev.ActorID {
		return nil
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(recipientID), payload).Err()
}
