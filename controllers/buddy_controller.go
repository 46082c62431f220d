package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/middleware"
	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/services"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// BuddyController runs the accountability-pair request endpoints. The
// acting user always comes from the authenticated identity.
type BuddyController struct {
	buddies *services.BuddyService
}

// NewBuddyController creates a BuddyController.
func NewBuddyController(db *gorm.DB) *BuddyController {
	return &BuddyController{buddies: services.NewBuddyService(db)}
}

// SendRequest creates a PENDING request from the caller to the receiver.
func (b *BuddyController) SendRequest(ctx *gin.Context) {
	actorID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "unauthorized")
		return
	}

	var req struct {
		ReceiverID int64 `json:"receiver_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	request, err := b.buddies.Send(ctx.Request.Context(), actorID, req.ReceiverID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"request": request})
}

// AcceptRequest accepts a pending request addressed to the caller.
func (b *BuddyController) AcceptRequest(ctx *gin.Context) {
	b.resolve(ctx, b.buddies.Accept)
}

// RejectRequest rejects a pending request addressed to the caller.
func (b *BuddyController) RejectRequest(ctx *gin.Context) {
	b.resolve(ctx, b.buddies.Reject)
}

// ListPending returns PENDING requests received by the caller.
func (b *BuddyController) ListPending(ctx *gin.Context) {
	b.list(ctx, b.buddies.PendingFor)
}

// ListSent returns every request the caller sent, any status.
func (b *BuddyController) ListSent(ctx *gin.Context) {
	b.list(ctx, b.buddies.SentBy)
}

// ListAccepted returns ACCEPTED requests on either side of the caller.
func (b *BuddyController) ListAccepted(ctx *gin.Context) {
	b.list(ctx, b.buddies.AcceptedFor)
}

type resolveFunc func(ctx context.Context, requestID, actingUserID int64) (*models.BuddyRequest, error)

func (b *BuddyController) resolve(ctx *gin.Context, fn resolveFunc) {
	actorID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "unauthorized")
		return
	}
	requestID, ok := pathID(ctx, "requestId")
	if !ok {
		return
	}

	request, err := fn(ctx.Request.Context(), requestID, actorID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"request": request})
}

func (b *BuddyController) list(ctx *gin.Context, fn func(context.Context, int64) ([]models.BuddyRequest, error)) {
	actorID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "unauthorized")
		return
	}

	requests, err := fn(ctx.Request.Context(), actorID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"requests": requests})
}
