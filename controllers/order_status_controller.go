package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateOrderStatus moves an order along the lifecycle state machine.
// Staff only. The read-modify-write is guarded by a conditional update
// on the status read, so a concurrent transition loses with a 409
// instead of double-applying terminal side effects.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	target := models.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !target.IsValid() {
		utils.LogError("Unknown status requested: %s", req.Status)
		utils.BadRequest(c, "Invalid status", gin.H{
			"valid_statuses": []models.OrderStatus{
				models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing,
				models.OrderStatusReady, models.OrderStatusOutForDelivery, models.OrderStatusDelivered,
				models.OrderStatusCompleted, models.OrderStatusCancelled,
			},
		})
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, orderID).Error; err != nil {
		utils.LogError("Order not found: %v", err)
		utils.NotFound(c, "Order not found")
		return
	}
	utils.LogDebug("Order %d current status: %s, requested: %s", order.ID, order.Status, target)

	if appErr := transitionOrder(&order, target, models.ActorStaff, ""); appErr != nil {
		utils.SendAppError(c, appErr)
		return
	}

	utils.Success(c, "Order status updated successfully", orderStatusResponse(&order))
}

// transitionOrder performs one state machine step. On success the order
// argument reflects the new state. Terminal success states credit the
// outlet's revenue in the same transaction and then fan out the
// order-completed event to the loyalty and referral engines.
func transitionOrder(order *models.Order, target models.OrderStatus, actor, reason string) *utils.AppError {
	from := order.Status

	if !from.CanTransitionTo(target) {
		utils.LogError("Invalid transition for order %d: %s -> %s", order.ID, from, target)
		return utils.InvalidTransitionError(from, target)
	}

	if target == models.OrderStatusOutForDelivery && order.OrderType != models.OrderTypeDelivery {
		return utils.BadRequestError("pickup orders cannot go out for delivery", nil)
	}
	if target == models.OrderStatusCompleted && order.OrderType != models.OrderTypePickup {
		return utils.BadRequestError("delivery orders are delivered, not completed at the counter", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if col, ok := target.TimestampColumn(); ok {
		updates[col] = now
	}
	if target == models.OrderStatusCancelled {
		updates["cancellation_reason"] = reason
		updates["cancelled_by"] = actor
	}

	terminalSuccess := target == models.OrderStatusDelivered || target == models.OrderStatusCompleted

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// The WHERE on the previously read status is the concurrency
		// guard: if another request already moved the order, zero rows
		// match and the loser gets a conflict.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.TransitionConflictError(order.ID)
		}

		if terminalSuccess {
			if err := tx.Model(&models.Outlet{}).
				Where("id = ?", order.OutletID).
				UpdateColumn("total_revenue", gorm.Expr("total_revenue + ?", order.Total)).Error; err != nil {
				return err
			}
			utils.LogInfo("Credited %.2f revenue to outlet %d for order %d", order.Total, order.OutletID, order.ID)
		}

		return nil
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			return appErr
		}
		utils.LogError("Failed to update order %d status: %v", order.ID, err)
		return utils.NewAppError(500, "Failed to update order status", err)
	}

	order.Status = target
	if col, ok := target.TimestampColumn(); ok {
		stampOrderTimestamp(order, col, now)
	}
	if target == models.OrderStatusCancelled {
		order.CancellationReason = reason
		order.CancelledBy = actor
	}
	utils.LogInfo("Order %d transitioned %s -> %s by %s", order.ID, from, target, actor)

	if terminalSuccess {
		// Loyalty first, then referral. Handler failures are logged by
		// the dispatcher and never unwind the transition.
		utils.EmitOrderCompleted(utils.OrderCompletedEvent{
			OrderID:    order.ID,
			UserID:     order.UserID,
			Total:      order.Total,
			OrderValue: order.Subtotal,
		})
	}

	utils.NotifyOrderStatus(order, target)
	return nil
}

// stampOrderTimestamp mirrors the persisted timestamp onto the in-memory order
func stampOrderTimestamp(order *models.Order, column string, t time.Time) {
	switch column {
	case "confirmed_at":
		order.ConfirmedAt = &t
	case "preparing_at":
		order.PreparingAt = &t
	case "ready_at":
		order.ReadyAt = &t
	case "out_for_delivery_at":
		order.OutForDeliveryAt = &t
	case "delivered_at":
		order.DeliveredAt = &t
	case "completed_at":
		order.CompletedAt = &t
	case "cancelled_at":
		order.CancelledAt = &t
	}
}

// orderStatusResponse builds the common status-change response body
func orderStatusResponse(order *models.Order) gin.H {
	return gin.H{
		"order": gin.H{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"order_type":   order.OrderType,
			"total":        order.Total,
			"allowed_next": order.Status.AllowedTransitions(),
			"updated_at":   order.UpdatedAt.Format("2006-01-02 15:04:05"),
		},
	}
}
