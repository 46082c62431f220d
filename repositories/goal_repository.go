package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/models"
)

// GoalRepository handles data access for goals.
type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id int64) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals for user: %w", err)
	}
	return goals, nil
}

// IDsByUserID returns the ids of every goal owned by a user. Used by the
// cascaded account delete to clear checkpoints first.
func (r *GoalRepository) IDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&models.Goal{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list goal ids for user: %w", err)
	}
	return ids, nil
}

func (r *GoalRepository) Save(ctx context.Context, goal *models.Goal) error {
	if err := r.db.WithContext(ctx).Save(goal).Error; err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Goal{}, id).Error; err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&models.Goal{}).Error; err != nil {
		return fmt.Errorf("delete goals for user: %w", err)
	}
	return nil
}
