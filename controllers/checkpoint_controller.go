package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/middleware"
	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/services"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// CheckpointController manages checkpoint CRUD under goals.
type CheckpointController struct {
	checkpoints *services.CheckpointService
	goals       *services.GoalService
}

// NewCheckpointController creates a CheckpointController.
func NewCheckpointController(db *gorm.DB) *CheckpointController {
	return &CheckpointController{
		checkpoints: services.NewCheckpointService(db),
		goals:       services.NewGoalService(db),
	}
}

// AddCheckpoint attaches a checkpoint to a goal the caller owns and
// recomputes the goal's progress.
func (c *CheckpointController) AddCheckpoint(ctx *gin.Context) {
	goalID, ok := c.ownedGoalID(ctx)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
		Status      string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	cp, err := c.checkpoints.Add(ctx.Request.Context(), goalID, services.CheckpointInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"checkpoint": cp})
}

// ListCheckpoints returns a goal's checkpoints.
func (c *CheckpointController) ListCheckpoints(ctx *gin.Context) {
	goalID, ok := pathID(ctx, "goalId")
	if !ok {
		return
	}

	cps, err := c.checkpoints.ListForGoal(ctx.Request.Context(), goalID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"checkpoints": cps})
}

// UpdateCheckpoint applies a partial update and recomputes goal progress.
func (c *CheckpointController) UpdateCheckpoint(ctx *gin.Context) {
	cp, ok := c.ownedCheckpoint(ctx)
	if !ok {
		return
	}

	var patch models.CheckpointPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	updated, err := c.checkpoints.Update(ctx.Request.Context(), cp.ID, patch)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"checkpoint": updated})
}

// CompleteCheckpoint marks a checkpoint COMPLETED, stamps its completion
// date, and recomputes goal progress.
func (c *CheckpointController) CompleteCheckpoint(ctx *gin.Context) {
	cp, ok := c.ownedCheckpoint(ctx)
	if !ok {
		return
	}

	completed, err := c.checkpoints.Complete(ctx.Request.Context(), cp.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"checkpoint": completed})
}

// DeleteCheckpoint removes a checkpoint and recomputes goal progress.
func (c *CheckpointController) DeleteCheckpoint(ctx *gin.Context) {
	cp, ok := c.ownedCheckpoint(ctx)
	if !ok {
		return
	}

	if err := c.checkpoints.Delete(ctx.Request.Context(), cp.ID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ownedGoalID verifies the caller owns the goal named by the goalId path
// parameter.
func (c *CheckpointController) ownedGoalID(ctx *gin.Context) (int64, bool) {
	goalID, ok := pathID(ctx, "goalId")
	if !ok {
		return 0, false
	}
	goal, err := c.goals.GetByID(ctx.Request.Context(), goalID)
	if err != nil {
		respondServiceError(ctx, err)
		return 0, false
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != goal.UserID {
		utils.Error(ctx, http.StatusForbidden, 40300, "not the goal owner")
		return 0, false
	}
	return goalID, true
}

// ownedCheckpoint loads the checkpoint from the id path parameter and
// verifies the caller owns its goal.
func (c *CheckpointController) ownedCheckpoint(ctx *gin.Context) (*models.Checkpoint, bool) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return nil, false
	}
	cp, err := c.checkpoints.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return nil, false
	}
	goal, err := c.goals.GetByID(ctx.Request.Context(), cp.GoalID)
	if err != nil {
		respondServiceError(ctx, err)
		return nil, false
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != goal.UserID {
		utils.Error(ctx, http.StatusForbidden, 40300, "not the goal owner")
		return nil, false
	}
	return cp, true
}
