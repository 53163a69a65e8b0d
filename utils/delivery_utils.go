package utils

import (
	"math"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"gorm.io/gorm"
)

// FeeBreakdown describes how a delivery fee was resolved. Matched is
// false when no tier or bracket covered the inputs; the fee is then 0
// and the caller must treat it as a configuration gap, not a free ride.
type FeeBreakdown struct {
	Matched         bool     `json:"matched"`
	Fee             float64  `json:"fee"`
	TierMin         float64  `json:"tier_min"`
	TierMax         float64  `json:"tier_max"`
	OrderMin        float64  `json:"order_min"`
	OrderMax        *float64 `json:"order_max"`
	BaseFee         float64  `json:"base_fee"`
	PerKmFee        float64  `json:"per_km_fee"`
	DiscountPercent float64  `json:"discount_percent"`
	ExtraKm         float64  `json:"extra_km"`
}

// ResolveDeliveryFee resolves the delivery fee for a distance and order
// value against a fee config. Tiers are scanned in order and the first
// tier whose distance band contains the distance wins; within it, the
// first bracket with order_min <= value < order_max (nil = unbounded).
func ResolveDeliveryFee(cfg *models.DeliveryFeeConfig, distance, orderValue float64) FeeBreakdown {
	if cfg == nil {
		return FeeBreakdown{}
	}

	for _, tier := range cfg.Tiers {
		if distance < tier.DistanceMin || distance > tier.DistanceMax {
			continue
		}
		for _, bracket := range tier.Brackets {
			if orderValue < bracket.OrderMin {
				continue
			}
			if bracket.OrderMax != nil && orderValue >= *bracket.OrderMax {
				continue
			}

			extraKm := math.Max(0, distance-tier.DistanceMin)
			rawFee := bracket.BaseFee + extraKm*bracket.PerKmFee
			fee := Round2(rawFee * (1 - bracket.DiscountPercent/100))

			return FeeBreakdown{
				Matched:         true,
				Fee:             fee,
				TierMin:         tier.DistanceMin,
				TierMax:         tier.DistanceMax,
				OrderMin:        bracket.OrderMin,
				OrderMax:        bracket.OrderMax,
				BaseFee:         bracket.BaseFee,
				PerKmFee:        bracket.PerKmFee,
				DiscountPercent: bracket.DiscountPercent,
				ExtraKm:         extraKm,
			}
		}
		// Tier matched but no bracket did: configuration gap.
		return FeeBreakdown{TierMin: tier.DistanceMin, TierMax: tier.DistanceMax}
	}

	return FeeBreakdown{}
}

// ResolvePartnerPayout resolves the delivery-partner payout for a
// distance. Payout tiers carry flat rates, no order-value brackets.
func ResolvePartnerPayout(cfg *models.PayoutConfig, distance float64) (float64, bool) {
	if cfg == nil {
		return 0, false
	}

	for _, tier := range cfg.Tiers {
		if distance < tier.DistanceMin || distance > tier.DistanceMax {
			continue
		}
		extraKm := math.Max(0, distance-tier.DistanceMin)
		return Round2(tier.BasePayout + extraKm*tier.PerKmPayout), true
	}

	return 0, false
}

// FreeDeliveryThreshold returns the lowest order value at which delivery
// is free: the minimum order_min across brackets whose base and per-km
// fees are both zero. ok is false when no such bracket exists.
func FreeDeliveryThreshold(cfg *models.DeliveryFeeConfig) (float64, bool) {
	if cfg == nil {
		return 0, false
	}

	threshold := math.MaxFloat64
	found := false
	for _, tier := range cfg.Tiers {
		for _, bracket := range tier.Brackets {
			if bracket.BaseFee == 0 && bracket.PerKmFee == 0 && bracket.OrderMin < threshold {
				threshold = bracket.OrderMin
				found = true
			}
		}
	}
	if !found {
		return 0, false
	}
	return threshold, true
}

// GetActiveDeliveryFeeConfig loads the active fee config with its tiers
// and brackets in resolution order.
func GetActiveDeliveryFeeConfig() (*models.DeliveryFeeConfig, error) {
	var cfg models.DeliveryFeeConfig
	err := config.DB.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Tiers.Brackets", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("is_active = ?", true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetActivePayoutConfig loads the active payout config with its tiers
// in resolution order.
func GetActivePayoutConfig() (*models.PayoutConfig, error) {
	var cfg models.PayoutConfig
	err := config.DB.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("is_active = ?", true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
