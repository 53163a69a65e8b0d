package utils

import (
	"fmt"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"gorm.io/gorm"
)

// CouponContext carries everything the evaluator needs about the order
// and the user. The DB-derived counters are loaded once by
// LoadCouponContext so evaluation itself stays pure.
type CouponContext struct {
	UserID      uint
	OrderValue  float64
	OutletID    uint
	ItemIDs     []uint
	CategoryIDs []uint

	// UserUsageCount is how many of the user's past orders carried
	// this coupon's code.
	UserUsageCount int64
	// CompletedOrders is the user's count of completed orders,
	// checked for first-order-only coupons.
	CompletedOrders int64

	Now time.Time
}

// CouponResult is the evaluator's verdict.
type CouponResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"`
}

func invalidCoupon(reason string) CouponResult {
	return CouponResult{Valid: false, Reason: reason}
}

// EvaluateCoupon runs the ordered validity checks and computes the
// bounded discount. It short-circuits on the first failing check.
// Existence of the code is the caller's lookup; everything after that
// happens here.
func EvaluateCoupon(coupon *models.Coupon, ctx CouponContext) CouponResult {
	if coupon == nil {
		return invalidCoupon("coupon not found")
	}
	if !coupon.Active {
		return invalidCoupon("coupon is not active")
	}
	if ctx.Now.Before(coupon.ValidFrom) {
		return invalidCoupon("coupon is not yet valid")
	}
	if ctx.Now.After(coupon.Expiry) {
		return invalidCoupon("coupon has expired")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return invalidCoupon("coupon usage limit reached")
	}
	if coupon.PerUserLimit > 0 && ctx.UserUsageCount >= int64(coupon.PerUserLimit) {
		return invalidCoupon("you have already used this coupon the maximum number of times")
	}
	if coupon.FirstOrderOnly && ctx.CompletedOrders > 0 {
		return invalidCoupon("coupon is valid only on your first order")
	}
	if ctx.OrderValue < coupon.MinOrderValue {
		return invalidCoupon(fmt.Sprintf("order value is below the minimum of %.2f for this coupon", coupon.MinOrderValue))
	}
	if len(coupon.Outlets) > 0 && !outletAllowed(coupon.Outlets, ctx.OutletID) {
		return invalidCoupon("coupon is not valid at this outlet")
	}
	if !restrictionMatched(coupon, ctx) {
		return invalidCoupon("coupon does not apply to any item in this order")
	}

	return CouponResult{Valid: true, Discount: couponDiscount(coupon, ctx.OrderValue)}
}

func outletAllowed(outlets []models.CouponOutlet, outletID uint) bool {
	for _, o := range outlets {
		if o.OutletID == outletID {
			return true
		}
	}
	return false
}

// restrictionMatched checks the item/category restriction: at least one
// line item or its category must be in the coupon's sets. Empty sets
// mean unrestricted.
func restrictionMatched(coupon *models.Coupon, ctx CouponContext) bool {
	if len(coupon.Items) == 0 && len(coupon.Categories) == 0 {
		return true
	}
	for _, restricted := range coupon.Items {
		for _, id := range ctx.ItemIDs {
			if restricted.MenuItemID == id {
				return true
			}
		}
	}
	for _, restricted := range coupon.Categories {
		for _, id := range ctx.CategoryIDs {
			if restricted.CategoryID == id {
				return true
			}
		}
	}
	return false
}

func couponDiscount(coupon *models.Coupon, orderValue float64) float64 {
	var discount float64
	switch coupon.Type {
	case models.CouponTypePercentage:
		discount = orderValue * coupon.Value / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	case models.CouponTypeFixed:
		discount = coupon.Value
		if discount > orderValue {
			discount = orderValue
		}
	}
	return Round2(discount)
}

// FindCouponByCode looks up a coupon case-insensitively, with its
// restriction sets loaded.
func FindCouponByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := config.DB.
		Preload("Outlets").
		Preload("Items").
		Preload("Categories").
		Where("LOWER(code) = LOWER(?)", code).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// LoadCouponContext fills the DB-derived counters for the evaluator.
func LoadCouponContext(userID uint, code string, orderValue float64, outletID uint, itemIDs, categoryIDs []uint) (CouponContext, error) {
	ctx := CouponContext{
		UserID:      userID,
		OrderValue:  orderValue,
		OutletID:    outletID,
		ItemIDs:     itemIDs,
		CategoryIDs: categoryIDs,
		Now:         time.Now(),
	}

	if err := config.DB.Model(&models.Order{}).
		Where("user_id = ? AND LOWER(coupon_code) = LOWER(?) AND status <> ?", userID, code, models.OrderStatusCancelled).
		Count(&ctx.UserUsageCount).Error; err != nil {
		return ctx, err
	}

	if err := config.DB.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID, []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCompleted}).
		Count(&ctx.CompletedOrders).Error; err != nil {
		return ctx, err
	}

	return ctx, nil
}

// RedeemCoupon increments the coupon's usage counter and accumulated
// discount inside tx. The limit check and the increment are one guarded
// UPDATE so concurrent redemptions cannot exceed the usage limit; a
// zero row count means another request won the last slot.
func RedeemCoupon(tx *gorm.DB, couponID uint, discount float64) *AppError {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
		Updates(map[string]interface{}{
			"used_count":     gorm.Expr("used_count + 1"),
			"total_discount": gorm.Expr("total_discount + ?", discount),
		})
	if res.Error != nil {
		return NewAppError(500, "failed to update coupon usage", res.Error)
	}
	if res.RowsAffected == 0 {
		return ConflictError("coupon usage limit reached", nil)
	}
	return nil
}
