package utils

import (
	"testing"
	"time"

	"github.com/Arjun-717/DineDash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon() *models.Coupon {
	return &models.Coupon{
		Code:      "SAVE10",
		Type:      models.CouponTypePercentage,
		Value:     10,
		Active:    true,
		ValidFrom: time.Now().Add(-24 * time.Hour),
		Expiry:    time.Now().Add(24 * time.Hour),
	}
}

func baseContext() CouponContext {
	return CouponContext{
		UserID:     1,
		OrderValue: 400,
		OutletID:   1,
		Now:        time.Now(),
	}
}

func TestEvaluateCouponHappyPath(t *testing.T) {
	result := EvaluateCoupon(validCoupon(), baseContext())
	require.True(t, result.Valid)
	assert.Equal(t, 40.0, result.Discount)
	assert.Empty(t, result.Reason)
}

func TestEvaluateCouponNil(t *testing.T) {
	result := EvaluateCoupon(nil, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon not found", result.Reason)
}

func TestEvaluateCouponInactive(t *testing.T) {
	coupon := validCoupon()
	coupon.Active = false

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon is not active", result.Reason)
}

func TestEvaluateCouponNotYetValid(t *testing.T) {
	coupon := validCoupon()
	coupon.ValidFrom = time.Now().Add(time.Hour)

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon is not yet valid", result.Reason)
}

func TestEvaluateCouponExpired(t *testing.T) {
	coupon := validCoupon()
	coupon.Expiry = time.Now().Add(-time.Hour)

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon has expired", result.Reason)
}

func TestEvaluateCouponUsageLimitReached(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = 100
	coupon.UsedCount = 100

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon usage limit reached", result.Reason)
}

func TestEvaluateCouponZeroUsageLimitIsUnlimited(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = 0
	coupon.UsedCount = 100000

	result := EvaluateCoupon(coupon, baseContext())
	assert.True(t, result.Valid)
}

func TestEvaluateCouponPerUserLimit(t *testing.T) {
	coupon := validCoupon()
	coupon.PerUserLimit = 2

	ctx := baseContext()
	ctx.UserUsageCount = 2

	result := EvaluateCoupon(coupon, ctx)
	assert.False(t, result.Valid)

	ctx.UserUsageCount = 1
	result = EvaluateCoupon(coupon, ctx)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponFirstOrderOnly(t *testing.T) {
	coupon := validCoupon()
	coupon.FirstOrderOnly = true

	ctx := baseContext()
	ctx.CompletedOrders = 3

	result := EvaluateCoupon(coupon, ctx)
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon is valid only on your first order", result.Reason)

	ctx.CompletedOrders = 0
	result = EvaluateCoupon(coupon, ctx)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponMinOrderValue(t *testing.T) {
	coupon := validCoupon()
	coupon.MinOrderValue = 500

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
}

func TestEvaluateCouponOutletRestriction(t *testing.T) {
	coupon := validCoupon()
	coupon.Outlets = []models.CouponOutlet{{OutletID: 7}}

	result := EvaluateCoupon(coupon, baseContext())
	assert.False(t, result.Valid)
	assert.Equal(t, "coupon is not valid at this outlet", result.Reason)

	ctx := baseContext()
	ctx.OutletID = 7
	result = EvaluateCoupon(coupon, ctx)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponItemRestriction(t *testing.T) {
	coupon := validCoupon()
	coupon.Items = []models.CouponItem{{MenuItemID: 10}}

	ctx := baseContext()
	ctx.ItemIDs = []uint{1, 2}
	result := EvaluateCoupon(coupon, ctx)
	assert.False(t, result.Valid)

	// One matching item is enough.
	ctx.ItemIDs = []uint{1, 10}
	result = EvaluateCoupon(coupon, ctx)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponCategoryRestriction(t *testing.T) {
	coupon := validCoupon()
	coupon.Categories = []models.CouponCategory{{CategoryID: 3}}

	ctx := baseContext()
	ctx.CategoryIDs = []uint{1, 2}
	result := EvaluateCoupon(coupon, ctx)
	assert.False(t, result.Valid)

	ctx.CategoryIDs = []uint{3}
	result = EvaluateCoupon(coupon, ctx)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponChecksShortCircuitInOrder(t *testing.T) {
	// An inactive, expired coupon reports inactive: the first failing
	// check wins.
	coupon := validCoupon()
	coupon.Active = false
	coupon.Expiry = time.Now().Add(-time.Hour)

	result := EvaluateCoupon(coupon, baseContext())
	assert.Equal(t, "coupon is not active", result.Reason)
}

func TestPercentageDiscountCappedByMaxDiscount(t *testing.T) {
	coupon := validCoupon()
	coupon.MaxDiscount = 50

	ctx := baseContext()
	ctx.OrderValue = 1000

	result := EvaluateCoupon(coupon, ctx)
	require.True(t, result.Valid)
	assert.Equal(t, 50.0, result.Discount)
}

func TestPercentageDiscountUncappedWhenMaxDiscountZero(t *testing.T) {
	ctx := baseContext()
	ctx.OrderValue = 1000

	result := EvaluateCoupon(validCoupon(), ctx)
	require.True(t, result.Valid)
	assert.Equal(t, 100.0, result.Discount)
}

func TestFixedDiscountCappedByOrderValue(t *testing.T) {
	coupon := validCoupon()
	coupon.Type = models.CouponTypeFixed
	coupon.Value = 150

	ctx := baseContext()
	ctx.OrderValue = 100

	result := EvaluateCoupon(coupon, ctx)
	require.True(t, result.Valid)
	assert.Equal(t, 100.0, result.Discount)

	ctx.OrderValue = 400
	result = EvaluateCoupon(coupon, ctx)
	require.True(t, result.Valid)
	assert.Equal(t, 150.0, result.Discount)
}
