package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/middleware"
	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/services"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// UserController manages account lookup, patch updates, and deletion.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

func userCacheKey(id int64) string {
	return "cache:user:" + strconv.FormatInt(id, 10)
}

// GetUser returns an account by id. Responses are cached for an hour and
// invalidated on update or delete.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if b, ok := utils.CacheGetBytes(userCacheKey(id)); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	user, err := u.users.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	payload := gin.H{"user": user}
	utils.CacheSetJSON(userCacheKey(id), utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// UpdateUser applies a partial update to the caller's own account.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != id {
		utils.Error(ctx, http.StatusForbidden, 40300, "cannot modify another account")
		return
	}

	var patch models.UserPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := u.users.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.CacheDel(userCacheKey(id))
	utils.Success(ctx, gin.H{"user": user})
}

// DeleteUser removes the caller's own account and everything it owns.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, ok := middleware.UserID(ctx)
	if !ok || actorID != id {
		utils.Error(ctx, http.StatusForbidden, 40300, "cannot delete another account")
		return
	}

	if err := u.users.Delete(ctx.Request.Context(), id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.CacheDel(userCacheKey(id))
	ctx.Status(http.StatusNoContent)
}
