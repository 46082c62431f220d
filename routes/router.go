package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elvis-tamrakar/productivity-buddy/config"
	"github.com/elvis-tamrakar/productivity-buddy/controllers"
	"github.com/elvis-tamrakar/productivity-buddy/middleware"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file so request noise stays out
	// of the application log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestID())
	// Populate identity when a valid token is present; bad tokens degrade
	// to anonymous and AuthRequired gates the protected groups.
	r.Use(middleware.Authenticate())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	goalController := controllers.NewGoalController(db)
	checkpointController := controllers.NewCheckpointController(db)
	buddyController := controllers.NewBuddyController(db)

	api := r.Group("/api/v1")

	usersGroup := api.Group("/users")
	usersGroup.POST("/register", middleware.RateLimitMiddleware(), authController.Register)
	usersGroup.POST("/login", middleware.RateLimitMiddleware(), authController.Login)
	usersGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	usersGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.GET("/users/:id", userController.GetUser)
	protected.PUT("/users/:id", userController.UpdateUser)
	protected.DELETE("/users/:id", userController.DeleteUser)

	protected.POST("/goals/user/:userId", goalController.CreateGoal)
	protected.GET("/goals/user/:userId", goalController.ListUserGoals)
	protected.GET("/goals/:goalId", goalController.GetGoal)
	protected.PUT("/goals/:goalId", goalController.UpdateGoal)
	protected.DELETE("/goals/:goalId", goalController.DeleteGoal)
	protected.POST("/goals/:goalId/complete", goalController.CompleteGoal)

	protected.POST("/goals/:goalId/checkpoints", checkpointController.AddCheckpoint)
	protected.GET("/goals/:goalId/checkpoints", checkpointController.ListCheckpoints)
	protected.PUT("/checkpoints/:id", checkpointController.UpdateCheckpoint)
	protected.POST("/checkpoints/:id/complete", checkpointController.CompleteCheckpoint)
	protected.DELETE("/checkpoints/:id", checkpointController.DeleteCheckpoint)

	protected.POST("/buddies", buddyController.SendRequest)
	protected.POST("/buddies/:requestId/accept", buddyController.AcceptRequest)
	protected.POST("/buddies/:requestId/reject", buddyController.RejectRequest)
	protected.GET("/buddies/pending", buddyController.ListPending)
	protected.GET("/buddies/sent", buddyController.ListSent)
	protected.GET("/buddies/accepted", buddyController.ListAccepted)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
