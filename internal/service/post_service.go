package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"threadly/internal/cache"
	"threadly/internal/models"
	"threadly/internal/notifications"
	"threadly/internal/observability"
	"threadly/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Client-facing messages.
const (
	MsgPostTextRequired  = "Text is required."
	MsgReplyTextRequired = "Text field is required"
	MsgDeleteForbidden   = "User not authorized to delete this post"
)

type PostService struct {
	postRepo repository.PostRepository
	notifier *notifications.Notifier
}

type CreatePostInput struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

type ReplyInput struct {
	Text string `json:"text"`
}

// LikeResult reports the outcome of a like toggle and the resulting count.
type LikeResult struct {
	Message   string               `json:"message"`
	Outcome   models.ToggleOutcome `json:"outcome"`
	LikeCount int64                `json:"likeCount"`
}

func NewPostService(postRepo repository.PostRepository, notifier *notifications.Notifier) *PostService {
	return &PostService{postRepo: postRepo, notifier: notifier}
}

func tooLong(limit int) string {
	return "Text must be less than or equal to " + strconv.Itoa(limit) + " characters."
}

func (s *PostService) CreatePost(ctx context.Context, viewer *models.User, in CreatePostInput) (*models.PostView, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError(MsgPostTextRequired)
	}
	if utf8.RuneCountInString(in.Text) > models.MaxPostTextLength {
		return nil, models.NewValidationError(tooLong(models.MaxPostTextLength))
	}

	post := &models.Post{
		PostedByID: viewer.ID,
		Text:       in.Text,
		Img:        strings.TrimSpace(in.Img),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.PostedBy = *viewer

	view := models.PostViewOf(post)
	return &view, nil
}

// GetPost returns the public read of a post, served from cache when possible.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.PostView, error) {
	var view models.PostView
	err := cache.Aside(ctx, cache.PostViewKey(id), &view, cache.PostViewTTL, func() error {
		post, err := s.postRepo.GetWithRelations(ctx, id)
		if err != nil {
			return err
		}
		view = models.PostViewOf(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// DeletePost removes a post owned by viewer together with its likes and replies.
func (s *PostService) DeletePost(ctx context.Context, viewer *models.User, id string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.PostedByID != viewer.ID {
		return models.NewForbiddenError(MsgDeleteForbidden)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike likes the post, or removes the like when viewer already liked it.
func (s *PostService) ToggleLike(ctx context.Context, viewer *models.User, postID string) (res *LikeResult, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.ToggleLike",
		attribute.String("post.id", postID),
		attribute.String("user.id", viewer.ID),
	)
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.postRepo.ToggleLike(ctx, postID, viewer.ID)
	if err != nil {
		return nil, err
	}
	observability.RelationshipToggles.WithLabelValues("like", string(outcome)).Inc()
	span.SetAttributes(attribute.String("toggle.outcome", string(outcome)))
	cache.InvalidatePost(ctx, postID)

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	res = &LikeResult{Message: "Post unliked successfully.", Outcome: outcome, LikeCount: count}
	if outcome == models.ToggleAdded {
		res.Message = "Post liked successfully."
		s.notify(ctx, post.PostedByID, notifications.Event{
			Type:          notifications.EventPostLiked,
			ActorID:       viewer.ID,
			ActorUsername: viewer.Username,
			PostID:        postID,
		})
	}
	return res, nil
}

// Reply adds a reply that snapshots the viewer's username and profile picture.
func (s *PostService) Reply(ctx context.Context, viewer *models.User, postID string, in ReplyInput) (*models.ReplyView, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError(MsgReplyTextRequired)
	}
	if utf8.RuneCountInString(in.Text) > models.MaxReplyTextLength {
		return nil, models.NewValidationError(tooLong(models.MaxReplyTextLength))
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{
		PostID:         postID,
		UserID:         viewer.ID,
		Text:           in.Text,
		Username:       viewer.Username,
		UserProfilePic: viewer.ProfilePic,
	}
	if err := s.postRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)

	s.notify(ctx, post.PostedByID, notifications.Event{
		Type:          notifications.EventReplied,
		ActorID:       viewer.ID,
		ActorUsername: viewer.Username,
		PostID:        postID,
	})

	view := models.ReplyViewOf(*reply)
	return &view, nil
}

// Feed lists posts by the users viewer follows, newest first.
func (s *PostService) Feed(ctx context.Context, viewer *models.User, limit, offset int) ([]models.PostView, error) {
	posts, err := s.postRepo.Feed(ctx, viewer.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, models.PostViewOf(p))
	}
	return views, nil
}

func (s *PostService) notify(ctx context.Context, recipientID string, ev notifications.Event) {
	if err := s.notifier.PublishUser(ctx, recipientID, ev); err != nil {
		slog.WarnContext(ctx, "failed to publish notification", "type", ev.Type, "user_id", recipientID, "err", err)
	}
}
