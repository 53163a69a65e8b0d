package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount type constants
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon represents a discount coupon. Codes are matched
// case-insensitively. A coupon that has been used is deactivated,
// never hard-deleted.
type Coupon struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Code           string  `gorm:"size:40;not null" json:"code"`
	Type           string  `json:"type"` // "percentage" or "fixed"
	Value          float64 `json:"value"`
	MinOrderValue  float64 `json:"min_order_value"`
	MaxDiscount    float64 `json:"max_discount"`   // 0 means uncapped
	UsageLimit     int     `json:"usage_limit"`    // 0 means unlimited
	PerUserLimit   int     `json:"per_user_limit"` // 0 means unlimited
	UsedCount      int     `json:"used_count"`
	TotalDiscount  float64 `json:"total_discount"` // accumulated discount given
	FirstOrderOnly bool    `json:"first_order_only"`

	ValidFrom time.Time `json:"valid_from"`
	Expiry    time.Time `json:"expiry"`
	Active    bool      `json:"active"`

	// Restriction sets. Empty set means unrestricted.
	Outlets    []CouponOutlet   `json:"outlets,omitempty" gorm:"foreignKey:CouponID"`
	Items      []CouponItem     `json:"items,omitempty" gorm:"foreignKey:CouponID"`
	Categories []CouponCategory `json:"categories,omitempty" gorm:"foreignKey:CouponID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponOutlet restricts a coupon to an outlet
type CouponOutlet struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CouponID uint `json:"coupon_id" gorm:"index"`
	OutletID uint `json:"outlet_id"`
}

// CouponItem restricts a coupon to a menu item
type CouponItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CouponID   uint `json:"coupon_id" gorm:"index"`
	MenuItemID uint `json:"menu_item_id"`
}

// CouponCategory restricts a coupon to a category
type CouponCategory struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CouponID   uint `json:"coupon_id" gorm:"index"`
	CategoryID uint `json:"category_id"`
}
