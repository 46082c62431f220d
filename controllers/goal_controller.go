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

// GoalController manages goal CRUD, completion, and listing.
type GoalController struct {
	goals *services.GoalService
}

// NewGoalController creates a GoalController.
func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{goals: services.NewGoalService(db)}
}

// CreateGoal attaches a new goal to the given user.
func (g *GoalController) CreateGoal(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != userID {
		utils.Error(ctx, http.StatusForbidden, 40300, "cannot create goals for another user")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	goal, err := g.goals.Create(ctx.Request.Context(), userID, services.GoalInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// ListUserGoals returns every goal owned by a user.
func (g *GoalController) ListUserGoals(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	goals, err := g.goals.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"goals": goals})
}

// GetGoal returns a goal by id.
func (g *GoalController) GetGoal(ctx *gin.Context) {
	goalID, ok := pathID(ctx, "goalId")
	if !ok {
		return
	}

	goal, err := g.goals.GetByID(ctx.Request.Context(), goalID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"goal": goal})
}

// UpdateGoal applies a partial update to a goal the caller owns.
func (g *GoalController) UpdateGoal(ctx *gin.Context) {
	goal, ok := g.ownedGoal(ctx)
	if !ok {
		return
	}

	var patch models.GoalPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	updated, err := g.goals.Update(ctx.Request.Context(), goal.ID, patch)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"goal": updated})
}

// DeleteGoal removes a goal the caller owns along with its checkpoints.
func (g *GoalController) DeleteGoal(ctx *gin.Context) {
	goal, ok := g.ownedGoal(ctx)
	if !ok {
		return
	}

	if err := g.goals.Delete(ctx.Request.Context(), goal.ID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CompleteGoal forces COMPLETED status and 100 progress.
func (g *GoalController) CompleteGoal(ctx *gin.Context) {
	goal, ok := g.ownedGoal(ctx)
	if !ok {
		return
	}

	completed, err := g.goals.Complete(ctx.Request.Context(), goal.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"goal": completed})
}

// ownedGoal loads the goal from the goalId path parameter and verifies the
// caller owns it.
func (g *GoalController) ownedGoal(ctx *gin.Context) (*models.Goal, bool) {
	goalID, ok := pathID(ctx, "goalId")
	if !ok {
		return nil, false
	}
	goal, err := g.goals.GetByID(ctx.Request.Context(), goalID)
	if err != nil {
		respondServiceError(ctx, err)
		return nil, false
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != goal.UserID {
		utils.Error(ctx, http.StatusForbidden, 40300, "not the goal owner")
		return nil, false
	}
	return goal, true
}
