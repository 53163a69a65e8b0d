package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// EvaluateCouponRequest represents the coupon validation request body
type EvaluateCouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderValue  float64 `json:"order_value" binding:"required"`
	OutletID    uint    `json:"outlet_id" binding:"required"`
	ItemIDs     []uint  `json:"item_ids"`
	CategoryIDs []uint  `json:"category_ids"`
}

// EvaluateCouponCode validates a coupon against an order context
// without redeeming it. Redemption only happens at checkout, inside
// the order-creation transaction.
func EvaluateCouponCode(c *gin.Context) {
	utils.LogInfo("EvaluateCouponCode called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req EvaluateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	coupon, err := utils.FindCouponByCode(req.Code)
	if err != nil {
		utils.LogError("Coupon %s not found for user %d", req.Code, user.ID)
		utils.Success(c, "Coupon evaluated", utils.CouponResult{Valid: false, Reason: "coupon not found"})
		return
	}

	ctx, err := utils.LoadCouponContext(user.ID, coupon.Code, req.OrderValue, req.OutletID, req.ItemIDs, req.CategoryIDs)
	if err != nil {
		utils.LogError("Failed to load coupon context for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to validate coupon", nil)
		return
	}

	result := utils.EvaluateCoupon(coupon, ctx)
	utils.LogInfo("Coupon %s evaluated for user %d: valid=%t", coupon.Code, user.ID, result.Valid)
	utils.Success(c, "Coupon evaluated", result)
}

// CreateCouponRequest represents the admin coupon creation body
type CreateCouponRequest struct {
	Code           string   `json:"code" binding:"required"`
	Type           string   `json:"type" binding:"required"`
	Value          float64  `json:"value" binding:"required"`
	MinOrderValue  float64  `json:"min_order_value"`
	MaxDiscount    float64  `json:"max_discount"`
	UsageLimit     int      `json:"usage_limit"`
	PerUserLimit   int      `json:"per_user_limit"`
	FirstOrderOnly bool     `json:"first_order_only"`
	ValidFrom      string   `json:"valid_from"`
	Expiry         string   `json:"expiry" binding:"required"`
	OutletIDs      []uint   `json:"outlet_ids"`
	ItemIDs        []uint   `json:"item_ids"`
	CategoryIDs    []uint   `json:"category_ids"`
}

// CreateCoupon creates a new coupon. Admin only.
func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Type != models.CouponTypePercentage && req.Type != models.CouponTypeFixed {
		utils.BadRequest(c, "Coupon type must be percentage or fixed", nil)
		return
	}
	if req.Value <= 0 {
		utils.BadRequest(c, "Coupon value must be positive", nil)
		return
	}
	if req.Type == models.CouponTypePercentage && req.Value > 100 {
		utils.BadRequest(c, "Percentage discount cannot exceed 100", nil)
		return
	}

	expiry, err := time.Parse("2006-01-02", req.Expiry)
	if err != nil {
		utils.BadRequest(c, "Expiry must be in YYYY-MM-DD format", nil)
		return
	}
	validFrom := time.Now()
	if req.ValidFrom != "" {
		validFrom, err = time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			utils.BadRequest(c, "valid_from must be in YYYY-MM-DD format", nil)
			return
		}
	}
	if !expiry.After(validFrom) {
		utils.BadRequest(c, "Expiry must be after the validity start", nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if _, err := utils.FindCouponByCode(code); err == nil {
		utils.Conflict(c, "A coupon with this code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:           code,
		Type:           req.Type,
		Value:          req.Value,
		MinOrderValue:  req.MinOrderValue,
		MaxDiscount:    req.MaxDiscount,
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		FirstOrderOnly: req.FirstOrderOnly,
		ValidFrom:      validFrom,
		Expiry:         expiry,
		Active:         true,
	}
	for _, id := range req.OutletIDs {
		coupon.Outlets = append(coupon.Outlets, models.CouponOutlet{OutletID: id})
	}
	for _, id := range req.ItemIDs {
		coupon.Items = append(coupon.Items, models.CouponItem{MenuItemID: id})
	}
	for _, id := range req.CategoryIDs {
		coupon.Categories = append(coupon.Categories, models.CouponCategory{CategoryID: id})
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon %s: %v", code, err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}
	utils.LogInfo("Created coupon %s (ID: %d)", coupon.Code, coupon.ID)

	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// ListCoupons returns all coupons. Admin only.
func ListCoupons(c *gin.Context) {
	utils.LogInfo("ListCoupons called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	pagination.SetTotal(total)

	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Coupons retrieved successfully", coupons, pagination)
}

// DeactivateCoupon soft-disables a coupon. Used coupons are never hard
// deleted so orders keep a valid code reference.
func DeactivateCoupon(c *gin.Context) {
	utils.LogInfo("DeactivateCoupon called")

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, couponID).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Model(&coupon).Update("active", false).Error; err != nil {
		utils.LogError("Failed to deactivate coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to deactivate coupon", nil)
		return
	}
	utils.LogInfo("Deactivated coupon %s (ID: %d)", coupon.Code, coupon.ID)

	utils.Success(c, "Coupon deactivated successfully", gin.H{"id": coupon.ID, "active": false})
}
