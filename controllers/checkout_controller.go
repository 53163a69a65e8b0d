package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaceOrderRequest represents the checkout request body
type PlaceOrderRequest struct {
	OutletID   uint             `json:"outlet_id" binding:"required"`
	OrderType  string           `json:"order_type" binding:"required"`
	Items      []OrderLineInput `json:"items" binding:"required"`
	CouponCode string           `json:"coupon_code"`
	DistanceKm float64          `json:"distance_km"`
}

// OrderLineInput is one requested line item. Prices are never taken
// from the request; the item's current price is snapshotted instead.
type OrderLineInput struct {
	MenuItemID   uint   `json:"menu_item_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	Instructions string `json:"instructions"`
}

// PlaceOrder prices and creates a new order in the pending state. The
// coupon redemption (usage counter) happens in the same transaction as
// the order insert, so a failed creation never burns a coupon slot.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}
	utils.LogInfo("Processing order placement for user ID: %d", user.ID)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	orderType := strings.ToLower(strings.TrimSpace(req.OrderType))
	if orderType != models.OrderTypeDelivery && orderType != models.OrderTypePickup {
		utils.BadRequest(c, "Order type must be delivery or pickup", nil)
		return
	}
	if len(req.Items) == 0 {
		utils.BadRequest(c, "Cannot place an order with an empty cart", nil)
		return
	}
	if orderType == models.OrderTypeDelivery && req.DistanceKm <= 0 {
		utils.BadRequest(c, "Delivery orders require a positive delivery distance", nil)
		return
	}

	var outlet models.Outlet
	if err := config.DB.First(&outlet, req.OutletID).Error; err != nil {
		utils.LogError("Outlet %d not found for user ID: %d", req.OutletID, user.ID)
		utils.NotFound(c, "Outlet not found")
		return
	}
	if !outlet.IsActive {
		utils.BadRequest(c, "Outlet is currently closed", nil)
		return
	}

	// Validate lines and snapshot current prices
	lines := make([]utils.OrderLine, 0, len(req.Items))
	itemIDs := make([]uint, 0, len(req.Items))
	categoryIDs := make([]uint, 0, len(req.Items))
	for _, input := range req.Items {
		var item models.MenuItem
		if err := config.DB.Preload("AllowedOutlets").First(&item, input.MenuItemID).Error; err != nil {
			utils.LogError("Menu item %d not found for user ID: %d", input.MenuItemID, user.ID)
			utils.NotFound(c, fmt.Sprintf("Menu item %d not found", input.MenuItemID))
			return
		}

		line, appErr := utils.BuildOrderLine(&item, input.Quantity, outlet.ID)
		if appErr != nil {
			utils.LogError("Line rejected for user ID: %d: %s", user.ID, appErr.Message)
			utils.SendAppError(c, appErr)
			return
		}
		lines = append(lines, line)
		itemIDs = append(itemIDs, item.ID)
		categoryIDs = append(categoryIDs, item.CategoryID)
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal
	}
	subtotal = utils.Round2(subtotal)

	// Evaluate the coupon against the order context before pricing
	var coupon *models.Coupon
	var discount float64
	couponCode := strings.TrimSpace(req.CouponCode)
	if couponCode != "" {
		found, err := utils.FindCouponByCode(couponCode)
		if err != nil {
			utils.LogError("Coupon %s not found for user ID: %d", couponCode, user.ID)
			utils.NotFound(c, "Coupon not found")
			return
		}

		ctx, err := utils.LoadCouponContext(user.ID, found.Code, subtotal, outlet.ID, itemIDs, categoryIDs)
		if err != nil {
			utils.LogError("Failed to load coupon context for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to validate coupon", nil)
			return
		}

		result := utils.EvaluateCoupon(found, ctx)
		if !result.Valid {
			utils.LogError("Coupon %s rejected for user ID: %d: %s", couponCode, user.ID, result.Reason)
			utils.BadRequest(c, result.Reason, nil)
			return
		}
		coupon = found
		discount = result.Discount
	}

	var feeCfg *models.DeliveryFeeConfig
	if orderType == models.OrderTypeDelivery {
		cfg, err := utils.GetActiveDeliveryFeeConfig()
		if err != nil {
			utils.LogError("No active delivery fee config: %v", err)
			utils.InternalServerError(c, "Delivery fees are not configured", nil)
			return
		}
		feeCfg = cfg
	}

	quote, appErr := utils.BuildPriceQuote(lines, orderType, req.DistanceKm, feeCfg, discount)
	if appErr != nil {
		utils.SendAppError(c, appErr)
		return
	}

	order := models.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      user.ID,
		OutletID:    outlet.ID,
		OrderType:   orderType,
		Status:      models.OrderStatusPending,
		DistanceKm:  req.DistanceKm,
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Tax:         quote.Tax,
		Discount:    quote.Discount,
		Total:       quote.Total,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}
	for _, line := range lines {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Price:      line.MenuItem.Price,
			Quantity:   line.Quantity,
			Total:      line.Subtotal,
		})
	}
	for i, input := range req.Items {
		order.OrderItems[i].Instructions = input.Instructions
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	if coupon != nil {
		if appErr := utils.RedeemCoupon(tx, coupon.ID, discount); appErr != nil {
			tx.Rollback()
			utils.LogError("Coupon redemption failed for order, user ID: %d: %s", user.ID, appErr.Message)
			utils.SendAppError(c, appErr)
			return
		}
		utils.LogInfo("Redeemed coupon %s for user ID: %d", coupon.Code, user.ID)
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}
	utils.LogInfo("Created order %s (ID: %d) for user ID: %d, total: %.2f", order.OrderNumber, order.ID, user.ID, order.Total)

	order.User = user
	utils.NotifyOrderStatus(&order, models.OrderStatusPending)

	utils.Created(c, "Order placed successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"order_type":   order.OrderType,
		"subtotal":     fmt.Sprintf("%.2f", order.Subtotal),
		"delivery_fee": fmt.Sprintf("%.2f", order.DeliveryFee),
		"tax":          fmt.Sprintf("%.2f", order.Tax),
		"discount":     fmt.Sprintf("%.2f", order.Discount),
		"total":        fmt.Sprintf("%.2f", order.Total),
		"coupon_code":  order.CouponCode,
	})
}

// generateOrderNumber produces the external order reference
func generateOrderNumber() string {
	return fmt.Sprintf("DD-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}
