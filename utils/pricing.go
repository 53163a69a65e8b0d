package utils

import (
	"fmt"
	"math"

	"github.com/Arjun-717/DineDash/models"
)

// Round2 rounds a monetary amount to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderLine is one validated line of an order being priced. The menu
// item's current price is snapshotted here; the request never supplies
// a price.
type OrderLine struct {
	MenuItem models.MenuItem
	Quantity int
	Subtotal float64
}

// PriceQuote is the full price composition for an order. All five
// quantities are persisted on the order and never recomputed.
type PriceQuote struct {
	Subtotal    float64      `json:"subtotal"`
	DeliveryFee float64      `json:"delivery_fee"`
	Tax         float64      `json:"tax"`
	Discount    float64      `json:"discount"`
	Total       float64      `json:"total"`
	Fee         FeeBreakdown `json:"fee_breakdown"`
}

// ValidateOrderLine rejects unavailable items, quantities below the
// item's minimum, and items restricted to other outlets.
func ValidateOrderLine(item *models.MenuItem, quantity int, outletID uint) *AppError {
	if !item.IsActive {
		return BadRequestError(fmt.Sprintf("item %q is currently unavailable", item.Name), nil)
	}
	if quantity < item.MinOrderQty {
		return BadRequestError(fmt.Sprintf("item %q requires a minimum quantity of %d", item.Name, item.MinOrderQty), nil)
	}
	if len(item.AllowedOutlets) > 0 {
		allowed := false
		for _, ao := range item.AllowedOutlets {
			if ao.OutletID == outletID {
				allowed = true
				break
			}
		}
		if !allowed {
			return BadRequestError(fmt.Sprintf("item %q is not available at this outlet", item.Name), nil)
		}
	}
	return nil
}

// BuildOrderLine validates the line and snapshots the current price.
func BuildOrderLine(item *models.MenuItem, quantity int, outletID uint) (OrderLine, *AppError) {
	if appErr := ValidateOrderLine(item, quantity, outletID); appErr != nil {
		return OrderLine{}, appErr
	}
	return OrderLine{
		MenuItem: *item,
		Quantity: quantity,
		Subtotal: Round2(item.Price * float64(quantity)),
	}, nil
}

// BuildPriceQuote composes the subtotal, delivery fee, tax and discount
// into the order total. The delivery fee is zero for pickup orders;
// for delivery it comes from the active tiered fee config. An unmatched
// tier or bracket is a configuration gap and fails the quote rather
// than silently pricing delivery at zero.
func BuildPriceQuote(lines []OrderLine, orderType string, distance float64, feeCfg *models.DeliveryFeeConfig, discount float64) (*PriceQuote, *AppError) {
	if len(lines) == 0 {
		return nil, BadRequestError("cannot price an empty order", nil)
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal
	}
	subtotal = Round2(subtotal)

	quote := &PriceQuote{Subtotal: subtotal}

	if orderType == models.OrderTypeDelivery {
		quote.Fee = ResolveDeliveryFee(feeCfg, distance, subtotal)
		if !quote.Fee.Matched {
			return nil, BadRequestError(fmt.Sprintf("no delivery fee configured for distance %.1f km", distance), nil)
		}
		quote.DeliveryFee = quote.Fee.Fee
	}

	quote.Tax = Round2(subtotal * TaxRate)
	quote.Discount = Round2(discount)

	total := Round2(subtotal + quote.DeliveryFee + quote.Tax - quote.Discount)
	if total < 0 {
		total = 0
	}
	quote.Total = total

	return quote, nil
}
