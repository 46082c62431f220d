package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elvis-tamrakar/productivity-buddy/config"
	"github.com/elvis-tamrakar/productivity-buddy/models"
)

func init() {
	config.SetForTesting(config.AppConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 24,
		// Point Redis at a closed port so the cache falls back to memory fast.
		RedisHost: "127.0.0.1",
		RedisPort: 1,
	})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Goal{}, &models.Checkpoint{}, &models.BuddyRequest{}))
	return db
}

func registerUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()
	user, err := NewUserService(db).Register(context.Background(), email, username, "secret123")
	require.NoError(t, err)
	return user
}

func createGoal(t *testing.T, db *gorm.DB, userID int64, title string) *models.Goal {
	t.Helper()
	goal, err := NewGoalService(db).Create(context.Background(), userID, GoalInput{
		Title:     title,
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	})
	require.NoError(t, err)
	return goal
}

func addCheckpoint(t *testing.T, db *gorm.DB, goalID int64, title string) *models.Checkpoint {
	t.Helper()
	cp, err := NewCheckpointService(db).Add(context.Background(), goalID, CheckpointInput{
		Title:   title,
		DueDate: "2026-06-30",
	})
	require.NoError(t, err)
	return cp
}
