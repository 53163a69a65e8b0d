package controllers

import (
	"strconv"
	"sync"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// activeConfigMu serializes SetActive calls so two admins cannot race
// the deactivate-then-activate swap.
var activeConfigMu sync.Mutex

// FeeTierInput is one distance tier in a fee config creation request
type FeeTierInput struct {
	DistanceMin float64           `json:"distance_min"`
	DistanceMax float64           `json:"distance_max"`
	Brackets    []FeeBracketInput `json:"brackets" binding:"required"`
}

// FeeBracketInput is one order-value bracket within a tier
type FeeBracketInput struct {
	OrderMin        float64  `json:"order_min"`
	OrderMax        *float64 `json:"order_max"`
	BaseFee         float64  `json:"base_fee"`
	PerKmFee        float64  `json:"per_km_fee"`
	DiscountPercent float64  `json:"discount_percent"`
}

// CreateFeeConfigRequest represents the fee config creation body
type CreateFeeConfigRequest struct {
	Notes string         `json:"notes"`
	Tiers []FeeTierInput `json:"tiers" binding:"required"`
}

// validateFeeTiers enforces contiguity at config-write time so the
// resolver never encounters gaps or overlaps: tiers must start at 0,
// be ascending and contiguous; brackets must start at 0, be contiguous,
// and only the last bracket may be unbounded.
func validateFeeTiers(tiers []FeeTierInput) *utils.AppError {
	if len(tiers) == 0 {
		return utils.BadRequestError("config must have at least one tier", nil)
	}
	if tiers[0].DistanceMin != 0 {
		return utils.BadRequestError("first tier must start at distance 0", nil)
	}
	for i, tier := range tiers {
		if tier.DistanceMax <= tier.DistanceMin {
			return utils.BadRequestError("tier distance_max must exceed distance_min", nil)
		}
		if i > 0 && tier.DistanceMin != tiers[i-1].DistanceMax {
			return utils.BadRequestError("tiers must be contiguous: each tier must start where the previous one ends", nil)
		}

		if len(tier.Brackets) == 0 {
			return utils.BadRequestError("each tier must have at least one bracket", nil)
		}
		if tier.Brackets[0].OrderMin != 0 {
			return utils.BadRequestError("first bracket must start at order value 0", nil)
		}
		for j, bracket := range tier.Brackets {
			if bracket.DiscountPercent < 0 || bracket.DiscountPercent > 100 {
				return utils.BadRequestError("bracket discount_percent must be between 0 and 100", nil)
			}
			if bracket.BaseFee < 0 || bracket.PerKmFee < 0 {
				return utils.BadRequestError("bracket fees must be non-negative", nil)
			}
			if j > 0 {
				prev := tier.Brackets[j-1]
				if prev.OrderMax == nil {
					return utils.BadRequestError("only the last bracket of a tier may be unbounded", nil)
				}
				if bracket.OrderMin != *prev.OrderMax {
					return utils.BadRequestError("brackets must be contiguous: each bracket must start where the previous one ends", nil)
				}
			}
			if bracket.OrderMax != nil && *bracket.OrderMax <= bracket.OrderMin {
				return utils.BadRequestError("bracket order_max must exceed order_min", nil)
			}
		}
	}
	return nil
}

// CreateDeliveryFeeConfig creates a new, inactive fee config version.
// Activation is a separate explicit step.
func CreateDeliveryFeeConfig(c *gin.Context) {
	utils.LogInfo("CreateDeliveryFeeConfig called")

	var req CreateFeeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if appErr := validateFeeTiers(req.Tiers); appErr != nil {
		utils.LogError("Fee config validation failed: %s", appErr.Message)
		utils.SendAppError(c, appErr)
		return
	}

	var maxVersion int
	config.DB.Model(&models.DeliveryFeeConfig{}).Select("COALESCE(MAX(version), 0)").Scan(&maxVersion)

	cfg := models.DeliveryFeeConfig{
		Version: maxVersion + 1,
		Notes:   req.Notes,
	}
	for i, tierInput := range req.Tiers {
		tier := models.DeliveryFeeTier{
			Position:    i,
			DistanceMin: tierInput.DistanceMin,
			DistanceMax: tierInput.DistanceMax,
		}
		for j, bracketInput := range tierInput.Brackets {
			tier.Brackets = append(tier.Brackets, models.DeliveryFeeBracket{
				Position:        j,
				OrderMin:        bracketInput.OrderMin,
				OrderMax:        bracketInput.OrderMax,
				BaseFee:         bracketInput.BaseFee,
				PerKmFee:        bracketInput.PerKmFee,
				DiscountPercent: bracketInput.DiscountPercent,
			})
		}
		cfg.Tiers = append(cfg.Tiers, tier)
	}

	if err := config.DB.Create(&cfg).Error; err != nil {
		utils.LogError("Failed to create fee config: %v", err)
		utils.InternalServerError(c, "Failed to create fee config", nil)
		return
	}
	utils.LogInfo("Created delivery fee config version %d", cfg.Version)

	utils.Created(c, "Delivery fee config created", gin.H{"version": cfg.Version, "id": cfg.ID})
}

// SetActiveDeliveryFeeConfig atomically swaps the active fee config to
// the given version, deactivating the prior one in the same transaction.
func SetActiveDeliveryFeeConfig(c *gin.Context) {
	utils.LogInfo("SetActiveDeliveryFeeConfig called")

	configID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid config ID", nil)
		return
	}

	var cfg models.DeliveryFeeConfig
	if err := config.DB.First(&cfg, configID).Error; err != nil {
		utils.NotFound(c, "Fee config not found")
		return
	}

	activeConfigMu.Lock()
	defer activeConfigMu.Unlock()

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DeliveryFeeConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.DeliveryFeeConfig{}).
			Where("id = ?", cfg.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		utils.LogError("Failed to activate fee config %d: %v", cfg.ID, err)
		utils.InternalServerError(c, "Failed to activate fee config", nil)
		return
	}
	utils.LogInfo("Activated delivery fee config version %d", cfg.Version)

	utils.Success(c, "Delivery fee config activated", gin.H{"version": cfg.Version, "id": cfg.ID})
}

// ListDeliveryFeeConfigs returns all fee config versions with their
// tiers and brackets.
func ListDeliveryFeeConfigs(c *gin.Context) {
	utils.LogInfo("ListDeliveryFeeConfigs called")

	var configs []models.DeliveryFeeConfig
	if err := config.DB.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Tiers.Brackets", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("version DESC").
		Find(&configs).Error; err != nil {
		utils.LogError("Failed to fetch fee configs: %v", err)
		utils.InternalServerError(c, "Failed to fetch fee configs", nil)
		return
	}

	utils.Success(c, "Fee configs retrieved successfully", gin.H{"configs": configs})
}

// PayoutTierInput is one distance tier in a payout config creation request
type PayoutTierInput struct {
	DistanceMin float64 `json:"distance_min"`
	DistanceMax float64 `json:"distance_max"`
	BasePayout  float64 `json:"base_payout"`
	PerKmPayout float64 `json:"per_km_payout"`
}

// CreatePayoutConfigRequest represents the payout config creation body
type CreatePayoutConfigRequest struct {
	Notes string            `json:"notes"`
	Tiers []PayoutTierInput `json:"tiers" binding:"required"`
}

func validatePayoutTiers(tiers []PayoutTierInput) *utils.AppError {
	if len(tiers) == 0 {
		return utils.BadRequestError("config must have at least one tier", nil)
	}
	if tiers[0].DistanceMin != 0 {
		return utils.BadRequestError("first tier must start at distance 0", nil)
	}
	for i, tier := range tiers {
		if tier.DistanceMax <= tier.DistanceMin {
			return utils.BadRequestError("tier distance_max must exceed distance_min", nil)
		}
		if i > 0 && tier.DistanceMin != tiers[i-1].DistanceMax {
			return utils.BadRequestError("tiers must be contiguous: each tier must start where the previous one ends", nil)
		}
		if tier.BasePayout < 0 || tier.PerKmPayout < 0 {
			return utils.BadRequestError("payout rates must be non-negative", nil)
		}
	}
	return nil
}

// CreatePayoutConfig creates a new, inactive payout config version
func CreatePayoutConfig(c *gin.Context) {
	utils.LogInfo("CreatePayoutConfig called")

	var req CreatePayoutConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if appErr := validatePayoutTiers(req.Tiers); appErr != nil {
		utils.LogError("Payout config validation failed: %s", appErr.Message)
		utils.SendAppError(c, appErr)
		return
	}

	var maxVersion int
	config.DB.Model(&models.PayoutConfig{}).Select("COALESCE(MAX(version), 0)").Scan(&maxVersion)

	cfg := models.PayoutConfig{
		Version: maxVersion + 1,
		Notes:   req.Notes,
	}
	for i, tierInput := range req.Tiers {
		cfg.Tiers = append(cfg.Tiers, models.PayoutTier{
			Position:    i,
			DistanceMin: tierInput.DistanceMin,
			DistanceMax: tierInput.DistanceMax,
			BasePayout:  tierInput.BasePayout,
			PerKmPayout: tierInput.PerKmPayout,
		})
	}

	if err := config.DB.Create(&cfg).Error; err != nil {
		utils.LogError("Failed to create payout config: %v", err)
		utils.InternalServerError(c, "Failed to create payout config", nil)
		return
	}
	utils.LogInfo("Created payout config version %d", cfg.Version)

	utils.Created(c, "Payout config created", gin.H{"version": cfg.Version, "id": cfg.ID})
}

// SetActivePayoutConfig atomically swaps the active payout config
func SetActivePayoutConfig(c *gin.Context) {
	utils.LogInfo("SetActivePayoutConfig called")

	configID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid config ID", nil)
		return
	}

	var cfg models.PayoutConfig
	if err := config.DB.First(&cfg, configID).Error; err != nil {
		utils.NotFound(c, "Payout config not found")
		return
	}

	activeConfigMu.Lock()
	defer activeConfigMu.Unlock()

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PayoutConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.PayoutConfig{}).
			Where("id = ?", cfg.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		utils.LogError("Failed to activate payout config %d: %v", cfg.ID, err)
		utils.InternalServerError(c, "Failed to activate payout config", nil)
		return
	}
	utils.LogInfo("Activated payout config version %d", cfg.Version)

	utils.Success(c, "Payout config activated", gin.H{"version": cfg.Version, "id": cfg.ID})
}
