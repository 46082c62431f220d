package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in the Gin context.
	ContextUserIDKey = "user_id"
	// ContextEmailKey stores the authenticated email inside the Gin context.
	ContextEmailKey = "email"
	// ContextTokenKey stores the raw bearer token for logout.
	ContextTokenKey = "token"
)

// Authenticate populates the request identity from a bearer token when one
// is present and valid. A missing, malformed, revoked, or expired token
// degrades to an anonymous request instead of failing it; handlers that
// need identity sit behind AuthRequired.
func Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" || utils.IsTokenBlacklisted(token) {
			ctx.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextEmailKey, claims.Subject)
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

// AuthRequired ensures the request carries a valid JWT.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		token := bearerToken(ctx)
		if token == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextEmailKey, claims.Subject)
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

// UserID returns the authenticated user id from the Gin context.
func UserID(ctx *gin.Context) (int64, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
