package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvis-tamrakar/productivity-buddy/models"
)

func TestCreateGoal(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")

	goal, err := svc.Create(context.Background(), user.ID, GoalInput{Title: "learn go"})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, goal.Status)
	assert.Zero(t, goal.Progress)

	_, err = svc.Create(context.Background(), 9999, GoalInput{Title: "orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), user.ID, GoalInput{Title: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), user.ID, GoalInput{Title: "bad date", StartDate: "01/02/2026"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	createGoal(t, db, user.ID, "one")
	createGoal(t, db, user.ID, "two")

	goals, err := svc.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 2)
}

func TestUpdateGoal_PartialPatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")

	status := models.GoalStatusPaused
	updated, err := svc.Update(context.Background(), goal.ID, models.GoalPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusPaused, updated.Status)
	assert.Equal(t, "learn go", updated.Title)

	bad := "SNOOZED"
	_, err = svc.Update(context.Background(), goal.ID, models.GoalPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), 9999, models.GoalPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGoal_CascadesCheckpoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")
	addCheckpoint(t, db, goal.ID, "finish the tour")

	require.NoError(t, svc.Delete(context.Background(), goal.ID))

	var cpCount int64
	db.Model(&models.Checkpoint{}).Where("goal_id = ?", goal.ID).Count(&cpCount)
	assert.Zero(t, cpCount)

	assert.ErrorIs(t, svc.Delete(context.Background(), goal.ID), ErrNotFound)
}

func TestCompleteGoal_OverridesDerivedProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")
	// Two pending checkpoints: derived progress would be 0.
	addCheckpoint(t, db, goal.ID, "a")
	addCheckpoint(t, db, goal.ID, "b")

	completed, err := svc.Complete(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCompleted, completed.Status)
	assert.Equal(t, 100, completed.Progress)
}

func TestRecomputeProgress_EmptyGoal(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "empty")

	recomputed, err := svc.RecomputeProgress(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Zero(t, recomputed.Progress)
}

func TestRecomputeProgress_Truncates(t *testing.T) {
	db := newTestDB(t)
	goalSvc := NewGoalService(db)
	cpSvc := NewCheckpointService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "thirds")

	cp := addCheckpoint(t, db, goal.ID, "one")
	addCheckpoint(t, db, goal.ID, "two")
	addCheckpoint(t, db, goal.ID, "three")

	_, err := cpSvc.Complete(context.Background(), cp.ID)
	require.NoError(t, err)

	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, got.Progress) // 100*1/3 truncated
}

// Mirrors the end-to-end scenario: two checkpoints, completing them one
// by one moves progress 0 -> 50 -> 100.
func TestProgressScenario(t *testing.T) {
	db := newTestDB(t)
	goalSvc := NewGoalService(db)
	cpSvc := NewCheckpointService(db)
	user := registerUser(t, db, "a@example.com", "a")

	goal := createGoal(t, db, user.ID, "ship the feature")
	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Progress)

	first := addCheckpoint(t, db, goal.ID, "write the code")
	second := addCheckpoint(t, db, goal.ID, "write the tests")

	_, err = cpSvc.Complete(context.Background(), first.ID)
	require.NoError(t, err)
	got, err = goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)

	_, err = cpSvc.Complete(context.Background(), second.ID)
	require.NoError(t, err)
	got, err = goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
}
