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

// GoalInput represents data required to create a goal.
type GoalInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

// GoalService wraps goal lifecycle and progress derivation.
type GoalService struct {
	db    *gorm.DB
	goals *repositories.GoalRepository
	users *repositories.UserRepository
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{
		db:    db,
		goals: repositories.NewGoalRepository(db),
		users: repositories.NewUserRepository(db),
	}
}

// Create attaches a new ACTIVE goal with zero progress to a user.
func (s *GoalService) Create(ctx context.Context, userID int64, input GoalInput) (*models.Goal, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	title := utils.Sanitize(strings.TrimSpace(input.Title))
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if err := checkDate("start_date", input.StartDate); err != nil {
		return nil, err
	}
	if err := checkDate("end_date", input.EndDate); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       title,
		Description: utils.Sanitize(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.GoalStatusActive,
		Progress:    0,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) ListForUser(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.goals.FindByUserID(ctx, userID)
}

func (s *GoalService) GetByID(ctx context.Context, goalID int64) (*models.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}
	return goal, nil
}

// Update applies only the non-nil fields of the patch. Progress is not
// patchable; it is derived from checkpoints.
func (s *GoalService) Update(ctx context.Context, goalID int64, patch models.GoalPatch) (*models.Goal, error) {
	goal, err := s.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*patch.Title))
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		goal.Title = title
	}
	if patch.Description != nil {
		goal.Description = utils.Sanitize(*patch.Description)
	}
	if patch.StartDate != nil {
		if err := checkDate("start_date", *patch.StartDate); err != nil {
			return nil, err
		}
		goal.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		if err := checkDate("end_date", *patch.EndDate); err != nil {
			return nil, err
		}
		goal.EndDate = *patch.EndDate
	}
	if patch.Status != nil {
		if !models.ValidGoalStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown goal status %q", ErrValidation, *patch.Status)
		}
		goal.Status = *patch.Status
	}

	if err := s.goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes the goal and its checkpoints in one transaction.
func (s *GoalService) Delete(ctx context.Context, goalID int64) error {
	if _, err := s.GetByID(ctx, goalID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewCheckpointRepository(tx).DeleteByGoalID(ctx, goalID); err != nil {
			return err
		}
		return repositories.NewGoalRepository(tx).Delete(ctx, goalID)
	})
}

// Complete forces COMPLETED status and 100 progress, overriding the
// checkpoint-derived value. This is the one accepted inconsistency with
// derived progress.
func (s *GoalService) Complete(ctx context.Context, goalID int64) (*models.Goal, error) {
	goal, err := s.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	goal.Status = models.GoalStatusCompleted
	goal.Progress = 100
	if err := s.goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// RecomputeProgress recalculates progress from the current checkpoint set.
func (s *GoalService) RecomputeProgress(ctx context.Context, goalID int64) (*models.Goal, error) {
	var goal *models.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		goal, err = recalcGoalProgress(ctx, tx, goalID)
		return err
	})
	return goal, err
}

// recalcGoalProgress recomputes and persists a goal's progress inside the
// caller's transaction: 100*completed/total with integer truncation, 0
// when the goal has no checkpoints.
func recalcGoalProgress(ctx context.Context, tx *gorm.DB, goalID int64) (*models.Goal, error) {
	goals := repositories.NewGoalRepository(tx)
	goal, err := goals.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal", ErrNotFound)
		}
		return nil, err
	}

	cps, err := repositories.NewCheckpointRepository(tx).FindByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if len(cps) > 0 {
		completed := 0
		for _, cp := range cps {
			if cp.Status == models.CheckpointStatusCompleted {
				completed++
			}
		}
		progress = completed * 100 / len(cps)
	}

	goal.Progress = progress
	if err := goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
