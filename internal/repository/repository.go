// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"threadly/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicate is returned when a write collides with a unique index.
var ErrDuplicate = errors.New("duplicate record")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// toggle flips the association row matched by query in one transaction:
// an existing row is deleted, otherwise build() is inserted. If the insert
// finds the row already present (a concurrent toggle won the race), that row
// is deleted instead, so every call flips the state exactly once.
func toggle[T any](ctx context.Context, db *gorm.DB, build func() *T, query string, args ...any) (models.ToggleOutcome, error) {
	var outcome models.ToggleOutcome

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(query, args...).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			outcome = models.ToggleRemoved
			return nil
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(build())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			outcome = models.ToggleAdded
			return nil
		}

		if err := tx.Where(query, args...).Delete(new(T)).Error; err != nil {
			return err
		}
		outcome = models.ToggleRemoved
		return nil
	})
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return outcome, nil
}
