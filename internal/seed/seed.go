package seed

import (
	"context"
	"fmt"
	"log/slog"

	"threadly/internal/models"

	"gorm.io/gorm"
)

const (
	followsPerUser    = 5
	maxLikesPerPost   = 5
	maxRepliesPerPost = 3
)

// Summary counts what a seeding run created.
type Summary struct {
	Users   int
	Follows int
	Posts   int
	Likes   int
	Replies int
}

// Seeder builds a social graph: users, follow edges, posts, likes and replies.
type Seeder struct {
	f    *Factory
	opts Options
}

// NewSeeder returns a Seeder writing to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{f: NewFactory(db, opts), opts: opts}
}

// Run seeds the database and reports what was created.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	slog.InfoContext(ctx, "seeding started",
		slog.Int("users", s.opts.NumUsers),
		slog.Int("posts", s.opts.NumPosts),
		slog.Bool("dry_run", s.opts.DryRun),
	)

	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		u, err := s.f.CreateUser(ctx)
		if err != nil {
			return sum, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	if len(users) == 0 {
		return sum, nil
	}

	for i, u := range users {
		for _, j := range s.pick(len(users), followsPerUser, i) {
			added, err := s.f.Follow(ctx, u, users[j])
			if err != nil {
				return sum, fmt.Errorf("follow: %w", err)
			}
			if added {
				sum.Follows++
			}
		}
	}

	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.f.rnd.Intn(len(users))]
		post, err := s.f.CreatePost(ctx, author)
		if err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		sum.Posts++

		for _, j := range s.pick(len(users), s.f.rnd.Intn(maxLikesPerPost+1), -1) {
			added, err := s.f.Like(ctx, users[j], post)
			if err != nil {
				return sum, fmt.Errorf("like: %w", err)
			}
			if added {
				sum.Likes++
			}
		}

		for r := s.f.rnd.Intn(maxRepliesPerPost + 1); r > 0; r-- {
			if _, err := s.f.Reply(ctx, users[s.f.rnd.Intn(len(users))], post); err != nil {
				return sum, fmt.Errorf("reply: %w", err)
			}
			sum.Replies++
		}
	}

	slog.InfoContext(ctx, "seeding finished",
		slog.Int("users", sum.Users),
		slog.Int("follows", sum.Follows),
		slog.Int("posts", sum.Posts),
		slog.Int("likes", sum.Likes),
		slog.Int("replies", sum.Replies),
	)
	return sum, nil
}

// pick returns up to k distinct indexes in [0, n), never including skip.
func (s *Seeder) pick(n, k, skip int) []int {
	out := make([]int, 0, k)
	for _, idx := range s.f.rnd.Perm(n) {
		if len(out) == k {
			break
		}
		if idx != skip {
			out = append(out, idx)
		}
	}
	return out
}
