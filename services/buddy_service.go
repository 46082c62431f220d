package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/repositories"
)

// BuddyService runs the accountability-pair request workflow.
type BuddyService struct {
	db      *gorm.DB
	buddies *repositories.BuddyRequestRepository
	users   *repositories.UserRepository
}

func NewBuddyService(db *gorm.DB) *BuddyService {
	return &BuddyService{
		db:      db,
		buddies: repositories.NewBuddyRequestRepository(db),
		users:   repositories.NewUserRepository(db),
	}
}

// Send creates a PENDING request from requester to receiver. The
// duplicate check is status-blind: any existing request for the ordered
// pair blocks a new one.
func (s *BuddyService) Send(ctx context.Context, requesterID, receiverID int64) (*models.BuddyRequest, error) {
	if requesterID == receiverID {
		return nil, ErrSelfRequest
	}

	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: requester", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receiver", ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.buddies.ExistsByPair(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	req := &models.BuddyRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Date:        today(),
		Status:      models.BuddyStatusPending,
	}
	if err := s.buddies.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept transitions a PENDING request to ACCEPTED. Only the receiver may act.
func (s *BuddyService) Accept(ctx context.Context, requestID, actingUserID int64) (*models.BuddyRequest, error) {
	return s.resolve(ctx, requestID, actingUserID, models.BuddyStatusAccepted)
}

// Reject transitions a PENDING request to REJECTED. Only the receiver may act.
func (s *BuddyService) Reject(ctx context.Context, requestID, actingUserID int64) (*models.BuddyRequest, error) {
	return s.resolve(ctx, requestID, actingUserID, models.BuddyStatusRejected)
}

func (s *BuddyService) resolve(ctx context.Context, requestID, actingUserID int64, status string) (*models.BuddyRequest, error) {
	req, err := s.buddies.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: buddy request", ErrNotFound)
		}
		return nil, err
	}

	if req.ReceiverID != actingUserID {
		return nil, fmt.Errorf("%w: only the receiver can act on a request", ErrForbidden)
	}
	if req.Status != models.BuddyStatusPending {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}

	req.Status = status
	if err := s.buddies.Save(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// PendingFor lists PENDING requests received by the user.
func (s *BuddyService) PendingFor(ctx context.Context, userID int64) ([]models.BuddyRequest, error) {
	return s.buddies.FindByReceiverAndStatus(ctx, userID, models.BuddyStatusPending)
}

// SentBy lists every request the user sent, any status.
func (s *BuddyService) SentBy(ctx context.Context, userID int64) ([]models.BuddyRequest, error) {
	return s.buddies.FindByRequester(ctx, userID)
}

// AcceptedFor lists ACCEPTED requests where the user is on either side.
func (s *BuddyService) AcceptedFor(ctx context.Context, userID int64) ([]models.BuddyRequest, error) {
	return s.buddies.FindByUserAndStatus(ctx, userID, models.BuddyStatusAccepted)
}
