package routes

import (
	"github.com/Arjun-717/DineDash/controllers"
	"github.com/Arjun-717/DineDash/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Outlet management
		admin.POST("/outlets", controllers.CreateOutlet)
		admin.PUT("/outlets/:id", controllers.UpdateOutlet)
		admin.PATCH("/outlets/:id/active", controllers.SetOutletActive)
		admin.GET("/outlets/:id/revenue", controllers.GetOutletRevenue)

		// Menu management
		admin.POST("/categories", controllers.CreateCategory)
		admin.POST("/menu", controllers.CreateMenuItem)
		admin.PUT("/menu/:id", controllers.UpdateMenuItem)
		admin.PATCH("/menu/:id/active", controllers.SetMenuItemActive)

		// Coupon management
		admin.POST("/coupons", controllers.CreateCoupon)
		admin.GET("/coupons", controllers.ListCoupons)
		admin.PATCH("/coupons/:id/deactivate", controllers.DeactivateCoupon)

		// Delivery fee and payout configs
		admin.POST("/fee-configs", controllers.CreateDeliveryFeeConfig)
		admin.GET("/fee-configs", controllers.ListDeliveryFeeConfigs)
		admin.PATCH("/fee-configs/:id/activate", controllers.SetActiveDeliveryFeeConfig)
		admin.POST("/payout-configs", controllers.CreatePayoutConfig)
		admin.PATCH("/payout-configs/:id/activate", controllers.SetActivePayoutConfig)

		// Loyalty program
		admin.POST("/loyalty-configs", controllers.CreateLoyaltyConfig)
		admin.PATCH("/loyalty-configs/:id/activate", controllers.SetActiveLoyaltyConfig)
		admin.PATCH("/loyalty/accounts/:user_id/frozen", controllers.SetLoyaltyAccountFrozen)

		// Referral program
		admin.POST("/referral-configs", controllers.CreateReferralConfig)
		admin.PATCH("/referral-configs/:id/activate", controllers.SetActiveReferralConfig)

		// Reports
		admin.GET("/reports/sales/excel", controllers.DownloadSalesReportExcel)
	}
}
