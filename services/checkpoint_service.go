package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/repositories"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// CheckpointInput represents data required to create a checkpoint.
type CheckpointInput struct {
	Title       string
	Description string
	DueDate     string
	Status      string
}

// CheckpointService wraps checkpoint lifecycle. Every mutation triggers
// the owning goal's progress recompute within the same transaction.
type CheckpointService struct {
	db          *gorm.DB
	checkpoints *repositories.CheckpointRepository
	goals       *repositories.GoalRepository
}

func NewCheckpointService(db *gorm.DB) *CheckpointService {
	return &CheckpointService{
		db:          db,
		checkpoints: repositories.NewCheckpointRepository(db),
		goals:       repositories.NewGoalRepository(db),
	}
}

// Add attaches a checkpoint to a goal. Status defaults to PENDING.
func (s *CheckpointService) Add(ctx context.Context, goalID int64, input CheckpointInput) (*models.Checkpoint, error) {
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}

	title := utils.Sanitize(strings.TrimSpace(input.Title))
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if err := checkDate("due_date", input.DueDate); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = models.CheckpointStatusPending
	}
	if !models.ValidCheckpointStatus(status) {
		return nil, fmt.Errorf("%w: unknown checkpoint status %q", ErrValidation, status)
	}

	cp := &models.Checkpoint{
		GoalID:      goalID,
		Title:       title,
		Description: utils.Sanitize(input.Description),
		DueDate:     input.DueDate,
		Status:      status,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCheckpointRepository(tx).Create(ctx, cp); err != nil {
			return err
		}
		_, err := recalcGoalProgress(ctx, tx, goalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func (s *CheckpointService) ListForGoal(ctx context.Context, goalID int64) ([]models.Checkpoint, error) {
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}
	return s.checkpoints.FindByGoalID(ctx, goalID)
}

func (s *CheckpointService) GetByID(ctx context.Context, id int64) (*models.Checkpoint, error) {
	cp, err := s.checkpoints.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: checkpoint", ErrNotFound)
		}
		return nil, err
	}
	return cp, nil
}

// Update applies only the non-nil fields of the patch. Status may move to
// any enum value; there is no transition guard.
func (s *CheckpointService) Update(ctx context.Context, id int64, patch models.CheckpointPatch) (*models.Checkpoint, error) {
	cp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*patch.Title))
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		cp.Title = title
	}
	if patch.Description != nil {
		cp.Description = utils.Sanitize(*patch.Description)
	}
	if patch.DueDate != nil {
		if err := checkDate("due_date", *patch.DueDate); err != nil {
			return nil, err
		}
		cp.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		if !models.ValidCheckpointStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown checkpoint status %q", ErrValidation, *patch.Status)
		}
		cp.Status = *patch.Status
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCheckpointRepository(tx).Save(ctx, cp); err != nil {
			return err
		}
		_, err := recalcGoalProgress(ctx, tx, cp.GoalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

// Complete marks the checkpoint COMPLETED and stamps the completion date.
func (s *CheckpointService) Complete(ctx context.Context, id int64) (*models.Checkpoint, error) {
	cp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cp.Status = models.CheckpointStatusCompleted
	completed := today()
	cp.CompletedDate = &completed

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCheckpointRepository(tx).Save(ctx, cp); err != nil {
			return err
		}
		_, err := recalcGoalProgress(ctx, tx, cp.GoalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

// Delete removes the checkpoint and recomputes the goal's progress over
// the remaining set.
func (s *CheckpointService) Delete(ctx context.Context, id int64) error {
	cp, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCheckpointRepository(tx).Delete(ctx, cp.ID); err != nil {
			return err
		}
		_, err := recalcGoalProgress(ctx, tx, cp.GoalID)
		return err
	})
}
