package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// ListOrders returns the authenticated user's orders, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, gin.H{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"order_type":   order.OrderType,
			"total":        fmt.Sprintf("%.2f", order.Total),
			"created_at":   order.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.SendPaginatedResponse(c, "Orders retrieved successfully", summaries, pagination)
}

// GetOrderDetails returns one order with line items and the lifecycle
// timestamps. Customers can only see their own orders.
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

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

	var order models.Order
	query := config.DB.Preload("OrderItems").Preload("Outlet")
	if !user.IsStaff && !user.IsAdmin {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"name":         item.Name,
			"quantity":     item.Quantity,
			"price":        fmt.Sprintf("%.2f", item.Price),
			"total":        fmt.Sprintf("%.2f", item.Total),
			"instructions": item.Instructions,
		})
	}

	utils.Success(c, "Order retrieved successfully", gin.H{
		"order": gin.H{
			"id":                  order.ID,
			"order_number":        order.OrderNumber,
			"outlet":              order.Outlet.Name,
			"status":              order.Status,
			"order_type":          order.OrderType,
			"distance_km":         order.DistanceKm,
			"subtotal":            fmt.Sprintf("%.2f", order.Subtotal),
			"delivery_fee":        fmt.Sprintf("%.2f", order.DeliveryFee),
			"tax":                 fmt.Sprintf("%.2f", order.Tax),
			"discount":            fmt.Sprintf("%.2f", order.Discount),
			"total":               fmt.Sprintf("%.2f", order.Total),
			"coupon_code":         order.CouponCode,
			"cancellation_reason": order.CancellationReason,
			"cancelled_by":        order.CancelledBy,
			"items":               items,
			"created_at":          order.CreatedAt.Format("2006-01-02 15:04:05"),
			"confirmed_at":        formatTimePtr(order.ConfirmedAt),
			"preparing_at":        formatTimePtr(order.PreparingAt),
			"ready_at":            formatTimePtr(order.ReadyAt),
			"out_for_delivery_at": formatTimePtr(order.OutForDeliveryAt),
			"delivered_at":        formatTimePtr(order.DeliveredAt),
			"completed_at":        formatTimePtr(order.CompletedAt),
			"cancelled_at":        formatTimePtr(order.CancelledAt),
		},
	})
}

// StaffListOrders returns all orders, optionally filtered by status
func StaffListOrders(c *gin.Context) {
	utils.LogInfo("StaffListOrders called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if statusFilter := strings.ToLower(c.Query("status")); statusFilter != "" {
		status := models.OrderStatus(statusFilter)
		if !status.IsValid() {
			utils.BadRequest(c, "Invalid status filter", nil)
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Preload("User").Preload("Outlet").
		Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	rows := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, gin.H{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"customer":     order.User.Username,
			"outlet":       order.Outlet.Name,
			"status":       order.Status,
			"order_type":   order.OrderType,
			"total":        fmt.Sprintf("%.2f", order.Total),
			"created_at":   order.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.SendPaginatedResponse(c, "Orders retrieved successfully", rows, pagination)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
