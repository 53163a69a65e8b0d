package models

import (
	"time"
)

// DeliveryFeeConfig is a versioned delivery fee schedule. Exactly one
// version is active at a time; SetActive swaps the flag atomically.
type DeliveryFeeConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   int       `json:"version" gorm:"uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"index"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tiers []DeliveryFeeTier `json:"tiers" gorm:"foreignKey:ConfigID"`
}

// DeliveryFeeTier is a distance band within a fee config. Tiers must be
// contiguous and non-overlapping; this is enforced when the config is
// created, not when fees are resolved.
type DeliveryFeeTier struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ConfigID    uint    `json:"config_id" gorm:"index"`
	Position    int     `json:"position"`
	DistanceMin float64 `json:"distance_min"`
	DistanceMax float64 `json:"distance_max"`

	Brackets []DeliveryFeeBracket `json:"brackets" gorm:"foreignKey:TierID"`
}

// DeliveryFeeBracket is an order-value band within a tier carrying the
// fee formula. A nil OrderMax means unbounded.
type DeliveryFeeBracket struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	TierID          uint     `json:"tier_id" gorm:"index"`
	Position        int      `json:"position"`
	OrderMin        float64  `json:"order_min"`
	OrderMax        *float64 `json:"order_max"` // nil = unbounded
	BaseFee         float64  `json:"base_fee"`
	PerKmFee        float64  `json:"per_km_fee"`
	DiscountPercent float64  `json:"discount_percent"`
}

// PayoutConfig is the versioned delivery-partner payout schedule.
type PayoutConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   int       `json:"version" gorm:"uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"index"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tiers []PayoutTier `json:"tiers" gorm:"foreignKey:ConfigID"`
}

// PayoutTier is a distance band with flat payout rates (no brackets).
type PayoutTier struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ConfigID    uint    `json:"config_id" gorm:"index"`
	Position    int     `json:"position"`
	DistanceMin float64 `json:"distance_min"`
	DistanceMax float64 `json:"distance_max"`
	BasePayout  float64 `json:"base_payout"`
	PerKmPayout float64 `json:"per_km_payout"`
}
