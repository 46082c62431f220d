package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvis-tamrakar/productivity-buddy/models"
)

func TestAddCheckpoint(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	goalSvc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")

	cp, err := svc.Add(context.Background(), goal.ID, CheckpointInput{Title: "do the tour", DueDate: "2026-06-30"})
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointStatusPending, cp.Status)
	assert.Nil(t, cp.CompletedDate)

	// Adding a pending checkpoint pulls progress down to 0 completed / 1.
	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Progress)

	_, err = svc.Add(context.Background(), 9999, CheckpointInput{Title: "orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(context.Background(), goal.ID, CheckpointInput{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(context.Background(), goal.ID, CheckpointInput{Title: "x", Status: "DONE"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddCheckpoint_DilutesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	goalSvc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")

	first := addCheckpoint(t, db, goal.ID, "one")
	_, err := svc.Complete(context.Background(), first.ID)
	require.NoError(t, err)

	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	addCheckpoint(t, db, goal.ID, "two")
	got, err = goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
}

func TestListCheckpoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")
	addCheckpoint(t, db, goal.ID, "one")
	addCheckpoint(t, db, goal.ID, "two")

	cps, err := svc.ListForGoal(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Len(t, cps, 2)

	_, err = svc.ListForGoal(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCheckpoint_RecomputesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	goalSvc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")
	cp := addCheckpoint(t, db, goal.ID, "one")

	status := models.CheckpointStatusCompleted
	updated, err := svc.Update(context.Background(), cp.ID, models.CheckpointPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointStatusCompleted, updated.Status)

	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	// Moving it back off COMPLETED recomputes downward too.
	status = models.CheckpointStatusInProgress
	_, err = svc.Update(context.Background(), cp.ID, models.CheckpointPatch{Status: &status})
	require.NoError(t, err)
	got, err = goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Progress)

	bad := "DONE"
	_, err = svc.Update(context.Background(), cp.ID, models.CheckpointPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), 9999, models.CheckpointPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteCheckpoint_StampsDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")
	cp := addCheckpoint(t, db, goal.ID, "one")

	completed, err := svc.Complete(context.Background(), cp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedDate)
	assert.Equal(t, today(), *completed.CompletedDate)

	_, err = svc.Complete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCheckpoint_RecomputesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckpointService(db)
	goalSvc := NewGoalService(db)
	user := registerUser(t, db, "alice@example.com", "alice")
	goal := createGoal(t, db, user.ID, "learn go")

	done := addCheckpoint(t, db, goal.ID, "done")
	pending := addCheckpoint(t, db, goal.ID, "pending")
	_, err := svc.Complete(context.Background(), done.ID)
	require.NoError(t, err)

	// 1 of 2 completed.
	got, err := goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)

	// Removing the pending one leaves 1 of 1 completed.
	require.NoError(t, svc.Delete(context.Background(), pending.ID))
	got, err = goalSvc.GetByID(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	assert.ErrorIs(t, svc.Delete(context.Background(), pending.ID), ErrNotFound)
}
