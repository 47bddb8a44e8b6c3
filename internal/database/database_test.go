package database

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"threadly/internal/config"
	"threadly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConnect_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   "sqlite",
		SQLitePath: ":memory:",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	for _, table := range []string{"users", "user_follows", "posts", "likes", "replies"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConnect_ProductionRequiresProvisionedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threadly.db")
	prod := &config.Config{Env: "production", DBDriver: "sqlite", SQLitePath: path}

	_, err := Connect(prod)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema not provisioned")

	// Provision out of band, then production connects without migrating.
	dev, err := Connect(&config.Config{Env: "test", DBDriver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	sqlDB, err := dev.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db, err := Connect(prod)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("posts"))
	sqlDB, err = db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestConnect_UniqueViolationIsTranslated(t *testing.T) {
	db, err := Connect(&config.Config{Env: "test", DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&models.User{Name: "A", Username: "alice", Email: "a@example.com", PasswordHash: "x"}).Error)

	err = db.WithContext(ctx).Create(&models.User{Name: "B", Username: "alice", Email: "b@example.com", PasswordHash: "x"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"}).Name())
	assert.Equal(t, "postgres", Dialector(&config.Config{DBDriver: "postgres"}).Name())
}

func TestCustomGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger(slog.Default())
	silent := l.LogMode(logger.Silent).(*CustomGormLogger)

	assert.Equal(t, logger.Silent, silent.Config.LogLevel)
	assert.Equal(t, logger.Warn, l.Config.LogLevel)
	assert.Equal(t, 200*time.Millisecond, l.Config.SlowThreshold)

	assert.NotPanics(t, func() {
		silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
		l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	})
}
