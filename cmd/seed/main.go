// Command main runs the database seeder for Threadly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"threadly/internal/bootstrap"
	"threadly/internal/config"
	"threadly/internal/middleware"
	"threadly/internal/seed"

	"gorm.io/gorm"
)

func main() {
	opts := seed.Options{}
	flag.IntVar(&opts.NumUsers, "users", 50, "Number of users to create")
	flag.IntVar(&opts.NumPosts, "posts", 200, "Number of posts to create")
	flag.IntVar(&opts.MaxDays, "days", 30, "Spread post timestamps over this many days")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Build and log entities without writing them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.Logger = middleware.NewLogger(cfg.Env)
	slog.SetDefault(middleware.Logger)

	if err := run(cfg, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(cfg *config.Config, opts seed.Options) error {
	var db *gorm.DB
	if !opts.DryRun {
		d, rdb, err := bootstrap.InitRuntime(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := bootstrap.Close(d, rdb); err != nil {
				slog.Error("close runtime", slog.String("error", err.Error()))
			}
		}()
		db = d
	}

	sum, err := seed.NewSeeder(db, opts).Run(context.Background())
	if err != nil {
		return fmt.Errorf("after %+v: %w", sum, err)
	}

	log.Printf("Seeded %d users, %d follows, %d posts, %d likes, %d replies",
		sum.Users, sum.Follows, sum.Posts, sum.Likes, sum.Replies)
	if !opts.DryRun {
		log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
	}
	return nil
}
