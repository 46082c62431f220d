package main

import (
	"github.com/elvis-tamrakar/productivity-buddy/config"
	"github.com/elvis-tamrakar/productivity-buddy/models"
	"github.com/elvis-tamrakar/productivity-buddy/routes"
	"github.com/elvis-tamrakar/productivity-buddy/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Goal{}, &models.Checkpoint{}, &models.BuddyRequest{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
