package main

import (
	"log"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/routes"
	"github.com/Arjun-717/DineDash/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed baseline data on first run
	config.EnsureSeedData()

	// Terminal order transitions fan out to the engagement engines.
	// Loyalty runs before referral; both failures are logged, never
	// propagated to the order flow.
	utils.RegisterOrderCompletedHandler(utils.OrderCompletedHandler{
		Name:   "loyalty-milestones",
		Handle: utils.ProcessLoyaltyOnOrderCompleted,
	})
	utils.RegisterOrderCompletedHandler(utils.OrderCompletedHandler{
		Name:   "referral-qualification",
		Handle: utils.ProcessReferralOnOrderCompleted,
	})

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
