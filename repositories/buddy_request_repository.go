package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/models"
)

// BuddyRequestRepository handles data access for buddy requests.
type BuddyRequestRepository struct {
	db *gorm.DB
}

func NewBuddyRequestRepository(db *gorm.DB) *BuddyRequestRepository {
	return &BuddyRequestRepository{db: db}
}

func (r *BuddyRequestRepository) Create(ctx context.Context, req *models.BuddyRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create buddy request: %w", err)
	}
	return nil
}

func (r *BuddyRequestRepository) FindByID(ctx context.Context, id int64) (*models.BuddyRequest, error) {
	var req models.BuddyRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ExistsByPair reports whether any request exists for the ordered
// (requester, receiver) pair. The check is status-blind on purpose: a
// rejected request still occupies the pair.
func (r *BuddyRequestRepository) ExistsByPair(ctx context.Context, requesterID, receiverID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BuddyRequest{}).
		Where("requester_id = ? AND receiver_id = ?", requesterID, receiverID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count buddy requests by pair: %w", err)
	}
	return count > 0, nil
}

func (r *BuddyRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverID int64, status string) ([]models.BuddyRequest, error) {
	var reqs []models.BuddyRequest
	if err := r.db.WithContext(ctx).Preload("Requester").
		Where("receiver_id = ? AND status = ?", receiverID, status).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list buddy requests for receiver: %w", err)
	}
	return reqs, nil
}

func (r *BuddyRequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]models.BuddyRequest, error) {
	var reqs []models.BuddyRequest
	if err := r.db.WithContext(ctx).Preload("Receiver").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list buddy requests for requester: %w", err)
	}
	return reqs, nil
}

// FindByUserAndStatus returns requests on either side of a user filtered
// by status.
func (r *BuddyRequestRepository) FindByUserAndStatus(ctx context.Context, userID int64, status string) ([]models.BuddyRequest, error) {
	var reqs []models.BuddyRequest
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Receiver").
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?", userID, userID, status).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list buddy requests for user: %w", err)
	}
	return reqs, nil
}

func (r *BuddyRequestRepository) Save(ctx context.Context, req *models.BuddyRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("save buddy request: %w", err)
	}
	return nil
}

func (r *BuddyRequestRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.BuddyRequest{}).Error; err != nil {
		return fmt.Errorf("delete buddy requests for user: %w", err)
	}
	return nil
}
