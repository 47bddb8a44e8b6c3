// Package seed creates demo data for local development. Everything is
// written through the repositories the API uses.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"threadly/internal/models"
	"threadly/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// Options control what the seeder creates.
type Options struct {
	NumUsers int
	NumPosts int
	// MaxDays spreads post timestamps over the last MaxDays days.
	MaxDays int
	// DryRun builds entities and logs them without touching the database.
	DryRun bool
}

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	posts   repository.PostRepository
	opts    Options
	rnd     *rand.Rand

	passwordHash string
}

// NewFactory creates a Factory bound to db. db may be nil when opts.DryRun is set.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:   repository.NewUserRepository(db),
		follows: repository.NewFollowRepository(db),
		posts:   repository.NewPostRepository(db),
		opts:    opts,
		// #nosec G404: acceptable for seeding
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// password returns the shared DefaultPassword hash, computed once per Factory.
func (f *Factory) password() (string, error) {
	if f.passwordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		f.passwordHash = string(hash)
	}
	return f.passwordHash, nil
}

// BuildUser returns an unsaved user with fake profile data.
func (f *Factory) BuildUser() *models.User {
	username := fmt.Sprintf("%s%d", truncate(strings.ToLower(gofakeit.Username()), 40), gofakeit.Number(100, 999))
	return &models.User{
		Name:       gofakeit.Name(),
		Username:   username,
		Email:      username + "@" + gofakeit.DomainName(),
		Bio:        gofakeit.Sentence(10),
		ProfilePic: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
}

// CreateUser builds and persists a user. Optional overrides run before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser()
	hash, err := f.password()
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		user.ID = models.NewID()
		slog.Debug("[dry-run] CreateUser", "username", user.Username)
		return user, nil
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post by author with a timestamp inside the
// configured window.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	createdAt := time.Now().Add(-age)

	post := &models.Post{
		PostedByID: author.ID,
		Text:       truncate(gofakeit.Sentence(5+f.rnd.Intn(30)), models.MaxPostTextLength),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if f.rnd.Intn(3) == 0 {
		post.Img = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	return post
}

// CreatePost builds and persists a post for author.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author)
	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		post.ID = models.NewID()
		slog.Debug("[dry-run] CreatePost", "author", author.Username, "text", post.Text)
		return post, nil
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Follow makes follower follow following. Self-follows are skipped.
func (f *Factory) Follow(ctx context.Context, follower, following *models.User) (bool, error) {
	if follower.ID == following.ID {
		return false, nil
	}
	if f.opts.DryRun {
		return true, nil
	}
	outcome, err := f.follows.Toggle(ctx, follower.ID, following.ID)
	if err != nil {
		return false, err
	}
	return outcome == models.ToggleAdded, nil
}

// Like records user liking post.
func (f *Factory) Like(ctx context.Context, user *models.User, post *models.Post) (bool, error) {
	if f.opts.DryRun {
		return true, nil
	}
	outcome, err := f.posts.ToggleLike(ctx, post.ID, user.ID)
	if err != nil {
		return false, err
	}
	return outcome == models.ToggleAdded, nil
}

// Reply adds a reply by user to post, snapshotting the user's profile.
func (f *Factory) Reply(ctx context.Context, user *models.User, post *models.Post) (*models.Reply, error) {
	reply := &models.Reply{
		PostID:         post.ID,
		UserID:         user.ID,
		Text:           truncate(gofakeit.Sentence(8), models.MaxReplyTextLength),
		Username:       user.Username,
		UserProfilePic: user.ProfilePic,
	}
	if f.opts.DryRun {
		reply.ID = models.NewID()
		return reply, nil
	}
	if err := f.posts.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
