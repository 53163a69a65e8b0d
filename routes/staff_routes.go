package routes

import (
	"github.com/Arjun-717/DineDash/controllers"
	"github.com/Arjun-717/DineDash/middleware"
	"github.com/gin-gonic/gin"
)

// initStaffRoutes initializes outlet-staff routes. Staff move orders
// through the kitchen lifecycle and can cancel on the outlet's behalf.
func initStaffRoutes(router *gin.RouterGroup) {
	staff := router.Group("/staff")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffMiddleware())
	{
		staff.GET("/orders", controllers.StaffListOrders)
		staff.GET("/orders/:id", controllers.GetOrderDetails)
		staff.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		staff.POST("/orders/:id/cancel", controllers.StaffCancelOrder)

		staff.GET("/payout", controllers.CalculatePartnerPayout)
	}
}
