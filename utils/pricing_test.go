package utils

import (
	"testing"

	"github.com/Arjun-717/DineDash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenuItem(price float64) models.MenuItem {
	return models.MenuItem{
		Name:        "Paneer Butter Masala",
		Price:       price,
		IsActive:    true,
		MinOrderQty: 1,
	}
}

func TestBuildOrderLineSnapshotsPrice(t *testing.T) {
	item := testMenuItem(240)

	line, appErr := BuildOrderLine(&item, 2, 1)
	require.Nil(t, appErr)
	assert.Equal(t, 480.0, line.Subtotal)
	assert.Equal(t, 240.0, line.MenuItem.Price)
}

func TestBuildOrderLineInactiveItem(t *testing.T) {
	item := testMenuItem(240)
	item.IsActive = false

	_, appErr := BuildOrderLine(&item, 1, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestBuildOrderLineBelowMinQuantity(t *testing.T) {
	item := testMenuItem(240)
	item.MinOrderQty = 3

	_, appErr := BuildOrderLine(&item, 2, 1)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "minimum quantity")
}

func TestBuildOrderLineOutletRestriction(t *testing.T) {
	item := testMenuItem(240)
	item.AllowedOutlets = []models.MenuItemOutlet{{OutletID: 5}}

	_, appErr := BuildOrderLine(&item, 1, 1)
	require.NotNil(t, appErr)

	line, appErr := BuildOrderLine(&item, 1, 5)
	require.Nil(t, appErr)
	assert.Equal(t, 240.0, line.Subtotal)
}

func TestBuildPriceQuoteEmptyOrder(t *testing.T) {
	_, appErr := BuildPriceQuote(nil, models.OrderTypePickup, 0, nil, 0)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestBuildPriceQuotePickupHasNoDeliveryFee(t *testing.T) {
	lines := []OrderLine{{Subtotal: 100}}

	quote, appErr := BuildPriceQuote(lines, models.OrderTypePickup, 0, nil, 0)
	require.Nil(t, appErr)
	assert.Equal(t, 100.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.DeliveryFee)
	assert.Equal(t, 8.0, quote.Tax)
	assert.Equal(t, 108.0, quote.Total)
}

func TestBuildPriceQuoteDelivery(t *testing.T) {
	lines := []OrderLine{{Subtotal: 100}}
	cfg := testFeeConfig()

	quote, appErr := BuildPriceQuote(lines, models.OrderTypeDelivery, 5, cfg, 0)
	require.Nil(t, appErr)
	assert.Equal(t, 60.0, quote.DeliveryFee)
	assert.Equal(t, 8.0, quote.Tax)
	assert.Equal(t, 168.0, quote.Total)
}

func TestBuildPriceQuoteTotalComposition(t *testing.T) {
	lines := []OrderLine{{Subtotal: 250}, {Subtotal: 150}}
	cfg := testFeeConfig()

	quote, appErr := BuildPriceQuote(lines, models.OrderTypeDelivery, 5, cfg, 40)
	require.Nil(t, appErr)

	assert.Equal(t, 400.0, quote.Subtotal)
	assert.Equal(t, quote.Subtotal+quote.DeliveryFee+quote.Tax-quote.Discount, quote.Total)
}

func TestBuildPriceQuoteConfigGapFailsQuote(t *testing.T) {
	lines := []OrderLine{{Subtotal: 100}}
	cfg := testFeeConfig()

	_, appErr := BuildPriceQuote(lines, models.OrderTypeDelivery, 50, cfg, 0)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestBuildPriceQuoteTotalFlooredAtZero(t *testing.T) {
	lines := []OrderLine{{Subtotal: 50}}

	quote, appErr := BuildPriceQuote(lines, models.OrderTypePickup, 0, nil, 500)
	require.Nil(t, appErr)
	assert.Equal(t, 0.0, quote.Total)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.0, Round2(10.0001))
	assert.Equal(t, 0.0, Round2(0))
}
