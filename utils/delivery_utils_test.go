package utils

import (
	"testing"

	"github.com/Arjun-717/DineDash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

// testFeeConfig mirrors the default seeded schedule: two distance
// tiers, three order-value brackets each, free delivery above 500.
func testFeeConfig() *models.DeliveryFeeConfig {
	brackets := func(perKm float64) []models.DeliveryFeeBracket {
		return []models.DeliveryFeeBracket{
			{Position: 0, OrderMin: 0, OrderMax: f(200), BaseFee: 30, PerKmFee: perKm},
			{Position: 1, OrderMin: 200, OrderMax: f(500), BaseFee: 20, PerKmFee: perKm},
			{Position: 2, OrderMin: 500, OrderMax: nil, BaseFee: 0, PerKmFee: 0},
		}
	}
	return &models.DeliveryFeeConfig{
		Version:  1,
		IsActive: true,
		Tiers: []models.DeliveryFeeTier{
			{Position: 0, DistanceMin: 0, DistanceMax: 2, Brackets: brackets(0)},
			{Position: 1, DistanceMin: 2, DistanceMax: 10, Brackets: brackets(10)},
		},
	}
}

func TestResolveDeliveryFeeShortDistance(t *testing.T) {
	cfg := testFeeConfig()

	// Extra distance counts from the tier's lower bound, so 1 km in the
	// 0-2 tier is 1 extra km; the fee stays 30 because per_km_fee is 0.
	got := ResolveDeliveryFee(cfg, 1, 100)
	require.True(t, got.Matched)
	assert.Equal(t, 30.0, got.Fee)
	assert.Equal(t, 1.0, got.ExtraKm)
}

func TestResolveDeliveryFeePerKmCharge(t *testing.T) {
	cfg := testFeeConfig()

	// 5 km falls in the 2-10 tier: 3 extra km at 10 each on a base of 30.
	got := ResolveDeliveryFee(cfg, 5, 100)
	require.True(t, got.Matched)
	assert.Equal(t, 60.0, got.Fee)
	assert.Equal(t, 3.0, got.ExtraKm)
}

func TestResolveDeliveryFeeMidBracket(t *testing.T) {
	cfg := testFeeConfig()

	got := ResolveDeliveryFee(cfg, 5, 300)
	require.True(t, got.Matched)
	assert.Equal(t, 50.0, got.Fee)
}

func TestResolveDeliveryFeeFreeAboveThreshold(t *testing.T) {
	cfg := testFeeConfig()

	got := ResolveDeliveryFee(cfg, 5, 600)
	require.True(t, got.Matched)
	assert.Equal(t, 0.0, got.Fee)

	// Bracket bounds are half-open: exactly 500 lands in the free bracket.
	got = ResolveDeliveryFee(cfg, 5, 500)
	require.True(t, got.Matched)
	assert.Equal(t, 0.0, got.Fee)

	// Just below the bound still pays.
	got = ResolveDeliveryFee(cfg, 5, 499.99)
	require.True(t, got.Matched)
	assert.Equal(t, 50.0, got.Fee)
}

func TestResolveDeliveryFeeBracketDiscount(t *testing.T) {
	cfg := &models.DeliveryFeeConfig{
		Tiers: []models.DeliveryFeeTier{
			{DistanceMin: 0, DistanceMax: 10, Brackets: []models.DeliveryFeeBracket{
				{OrderMin: 0, OrderMax: nil, BaseFee: 40, PerKmFee: 10, DiscountPercent: 25},
			}},
		},
	}

	// (40 + 4*10) * 0.75 = 60
	got := ResolveDeliveryFee(cfg, 4, 100)
	require.True(t, got.Matched)
	assert.Equal(t, 60.0, got.Fee)
}

func TestResolveDeliveryFeeDistanceGap(t *testing.T) {
	cfg := testFeeConfig()

	got := ResolveDeliveryFee(cfg, 15, 100)
	assert.False(t, got.Matched)
	assert.Equal(t, 0.0, got.Fee)
}

func TestResolveDeliveryFeeBracketGap(t *testing.T) {
	cfg := &models.DeliveryFeeConfig{
		Tiers: []models.DeliveryFeeTier{
			{DistanceMin: 0, DistanceMax: 10, Brackets: []models.DeliveryFeeBracket{
				{OrderMin: 100, OrderMax: nil, BaseFee: 20},
			}},
		},
	}

	// Tier matches but no bracket covers a 50-value order.
	got := ResolveDeliveryFee(cfg, 5, 50)
	assert.False(t, got.Matched)
	assert.Equal(t, 0.0, got.TierMin)
	assert.Equal(t, 10.0, got.TierMax)
}

func TestResolveDeliveryFeeNilConfig(t *testing.T) {
	got := ResolveDeliveryFee(nil, 5, 100)
	assert.False(t, got.Matched)
}

func TestResolvePartnerPayout(t *testing.T) {
	cfg := &models.PayoutConfig{
		Tiers: []models.PayoutTier{
			{DistanceMin: 0, DistanceMax: 2, BasePayout: 25, PerKmPayout: 0},
			{DistanceMin: 2, DistanceMax: 10, BasePayout: 25, PerKmPayout: 8},
		},
	}

	payout, ok := ResolvePartnerPayout(cfg, 1)
	require.True(t, ok)
	assert.Equal(t, 25.0, payout)

	payout, ok = ResolvePartnerPayout(cfg, 5)
	require.True(t, ok)
	assert.Equal(t, 49.0, payout)

	_, ok = ResolvePartnerPayout(cfg, 20)
	assert.False(t, ok)
}

func TestFreeDeliveryThreshold(t *testing.T) {
	cfg := testFeeConfig()

	threshold, ok := FreeDeliveryThreshold(cfg)
	require.True(t, ok)
	assert.Equal(t, 500.0, threshold)
}

func TestFreeDeliveryThresholdAbsent(t *testing.T) {
	cfg := &models.DeliveryFeeConfig{
		Tiers: []models.DeliveryFeeTier{
			{DistanceMin: 0, DistanceMax: 10, Brackets: []models.DeliveryFeeBracket{
				{OrderMin: 0, OrderMax: nil, BaseFee: 20, PerKmFee: 5},
			}},
		},
	}

	_, ok := FreeDeliveryThreshold(cfg)
	assert.False(t, ok)
}
