package routes

import (
	"github.com/Arjun-717/DineDash/controllers"
	"github.com/Arjun-717/DineDash/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all customer-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Browsing
	router.GET("/outlets", controllers.ListOutlets)
	router.GET("/menu", controllers.ListMenuItems)
	router.GET("/menu/:id", controllers.GetMenuItem)
	router.GET("/categories", controllers.ListCategories)
	router.GET("/delivery-fee", controllers.CalculateDeliveryFee)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Checkout and orders
		protected.POST("/checkout", controllers.PlaceOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.POST("/orders/:id/cancel", controllers.CancelOrder)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Coupons
		protected.POST("/coupons/evaluate", controllers.EvaluateCouponCode)

		// Loyalty
		protected.GET("/loyalty", controllers.GetLoyaltyStatus)
		protected.GET("/loyalty/rewards", controllers.ListMilestoneRewards)
		protected.POST("/loyalty/rewards/:id/claim", controllers.ClaimMilestoneReward)

		// Referrals
		protected.GET("/referrals", controllers.GetReferralSummary)
		protected.GET("/referrals/rewards", controllers.ListReferralRewards)
		protected.POST("/referrals/rewards/:id/claim", controllers.ClaimReferralReward)
	}
}
