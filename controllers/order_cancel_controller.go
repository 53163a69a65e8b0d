package controllers

import (
	"strconv"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// CancelOrderRequest represents the cancellation request body
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelOrder lets a customer cancel their own order. Customers may
// only cancel while the order is pending or confirmed; after the
// kitchen starts, cancellation is a staff decision.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Cancellation reason is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.UserID != user.ID {
		utils.LogError("User %d attempted to cancel order %d owned by user %d", user.ID, order.ID, order.UserID)
		utils.Forbidden(c, "You can only cancel your own orders")
		return
	}

	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
		utils.LogError("User %d attempted to cancel order %d in state %s", user.ID, order.ID, order.Status)
		utils.Forbidden(c, "Order can no longer be cancelled; please contact the outlet")
		return
	}

	if appErr := transitionOrder(&order, models.OrderStatusCancelled, models.ActorCustomer, req.Reason); appErr != nil {
		utils.SendAppError(c, appErr)
		return
	}

	utils.Success(c, "Order cancelled successfully", orderStatusResponse(&order))
}

// StaffCancelOrder cancels an order on behalf of the outlet. Staff may
// cancel any non-terminal order; the transition table enforces that.
func StaffCancelOrder(c *gin.Context) {
	utils.LogInfo("StaffCancelOrder called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Cancellation reason is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if appErr := transitionOrder(&order, models.OrderStatusCancelled, models.ActorStaff, req.Reason); appErr != nil {
		utils.SendAppError(c, appErr)
		return
	}

	utils.Success(c, "Order cancelled successfully", orderStatusResponse(&order))
}
