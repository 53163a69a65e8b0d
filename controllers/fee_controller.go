package controllers

import (
	"strconv"

	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// CalculateDeliveryFee quotes the delivery fee for an order value and
// distance against the active fee config. An unmatched tier or bracket
// is reported as a configuration gap, not a zero fee.
func CalculateDeliveryFee(c *gin.Context) {
	utils.LogInfo("CalculateDeliveryFee called")

	orderValue, err := strconv.ParseFloat(c.Query("order_value"), 64)
	if err != nil || orderValue < 0 {
		utils.BadRequest(c, "order_value must be a non-negative number", nil)
		return
	}
	distance, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil || distance < 0 {
		utils.BadRequest(c, "distance_km must be a non-negative number", nil)
		return
	}

	cfg, err := utils.GetActiveDeliveryFeeConfig()
	if err != nil {
		utils.LogError("No active delivery fee config: %v", err)
		utils.InternalServerError(c, "Delivery fees are not configured", nil)
		return
	}

	breakdown := utils.ResolveDeliveryFee(cfg, distance, orderValue)
	if !breakdown.Matched {
		utils.LogError("Fee config gap: distance %.2f, order value %.2f, config version %d", distance, orderValue, cfg.Version)
		utils.BadRequest(c, "No delivery fee configured for this distance and order value", gin.H{
			"config_version": cfg.Version,
		})
		return
	}

	response := gin.H{
		"fee":            breakdown.Fee,
		"breakdown":      breakdown,
		"config_version": cfg.Version,
	}
	if threshold, ok := utils.FreeDeliveryThreshold(cfg); ok {
		response["free_delivery_threshold"] = threshold
	}

	utils.Success(c, "Delivery fee calculated", response)
}

// CalculatePartnerPayout quotes the delivery-partner payout for a
// distance. Staff only.
func CalculatePartnerPayout(c *gin.Context) {
	utils.LogInfo("CalculatePartnerPayout called")

	distance, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil || distance < 0 {
		utils.BadRequest(c, "distance_km must be a non-negative number", nil)
		return
	}

	cfg, err := utils.GetActivePayoutConfig()
	if err != nil {
		utils.LogError("No active payout config: %v", err)
		utils.InternalServerError(c, "Partner payouts are not configured", nil)
		return
	}

	payout, matched := utils.ResolvePartnerPayout(cfg, distance)
	if !matched {
		utils.LogError("Payout config gap: distance %.2f, config version %d", distance, cfg.Version)
		utils.BadRequest(c, "No payout configured for this distance", gin.H{
			"config_version": cfg.Version,
		})
		return
	}

	utils.Success(c, "Partner payout calculated", gin.H{
		"payout":         payout,
		"distance_km":    distance,
		"config_version": cfg.Version,
	})
}
