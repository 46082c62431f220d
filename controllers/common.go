package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elvis-tamrakar/productivity-buddy/services"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses
// with application level codes.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, 40000, err.Error())
	case errors.Is(err, services.ErrSelfRequest):
		utils.Error(ctx, http.StatusBadRequest, 40010, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40300, err.Error())
	case errors.Is(err, services.ErrDuplicateRequest):
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		utils.Error(ctx, http.StatusConflict, 40901, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("unhandled service error: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal error")
	}
}

// pathID parses a positive int64 path parameter.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid "+name)
		return 0, false
	}
	return id, true
}
