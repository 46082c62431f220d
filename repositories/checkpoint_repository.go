package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/models"
)

// CheckpointRepository handles data access for checkpoints.
type CheckpointRepository struct {
	db *gorm.DB
}

func NewCheckpointRepository(db *gorm.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) Create(ctx context.Context, cp *models.Checkpoint) error {
	if err := r.db.WithContext(ctx).Create(cp).Error; err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}
	return nil
}

func (r *CheckpointRepository) FindByID(ctx context.Context, id int64) (*models.Checkpoint, error) {
	var cp models.Checkpoint
	if err := r.db.WithContext(ctx).First(&cp, id).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *CheckpointRepository) FindByGoalID(ctx context.Context, goalID int64) ([]models.Checkpoint, error) {
	var cps []models.Checkpoint
	if err := r.db.WithContext(ctx).Where("goal_id = ?", goalID).
		Order("due_date, id").
		Find(&cps).Error; err != nil {
		return nil, fmt.Errorf("list checkpoints for goal: %w", err)
	}
	return cps, nil
}

func (r *CheckpointRepository) Save(ctx context.Context, cp *models.Checkpoint) error {
	if err := r.db.WithContext(ctx).Save(cp).Error; err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

func (r *CheckpointRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Checkpoint{}, id).Error; err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

func (r *CheckpointRepository) DeleteByGoalID(ctx context.Context, goalID int64) error {
	if err := r.db.WithContext(ctx).Where("goal_id = ?", goalID).
		Delete(&models.Checkpoint{}).Error; err != nil {
		return fmt.Errorf("delete checkpoints for goal: %w", err)
	}
	return nil
}

func (r *CheckpointRepository) DeleteByGoalIDs(ctx context.Context, goalIDs []int64) error {
	if len(goalIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("goal_id IN ?", goalIDs).
		Delete(&models.Checkpoint{}).Error; err != nil {
		return fmt.Errorf("delete checkpoints for goals: %w", err)
	}
	return nil
}
