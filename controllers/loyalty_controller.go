package controllers

import (
	"strconv"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetLoyaltyStatus returns the user's milestone progress
func GetLoyaltyStatus(c *gin.Context) {
	utils.LogInfo("GetLoyaltyStatus called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	account, err := utils.GetOrCreateLoyaltyAccount(user.ID)
	if err != nil {
		utils.LogError("Failed to load loyalty account for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load loyalty status", nil)
		return
	}

	cfg := utils.GetActiveLoyaltyConfig()

	utils.Success(c, "Loyalty status retrieved successfully", gin.H{
		"progress":            account.Progress,
		"milestone_interval":  cfg.MilestoneInterval,
		"orders_to_milestone": cfg.MilestoneInterval - account.Progress,
		"total_orders":        account.TotalOrders,
		"milestones_achieved": account.MilestonesAchieved,
		"frozen":              account.Frozen,
	})
}

// ListMilestoneRewards returns the user's milestone rewards. Overdue
// rewards are expired lazily before listing.
func ListMilestoneRewards(c *gin.Context) {
	utils.LogInfo("ListMilestoneRewards called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	if err := utils.ExpireMilestoneRewards(user.ID); err != nil {
		utils.LogError("Failed to expire milestone rewards for user %d: %v", user.ID, err)
	}

	var rewards []models.MilestoneReward
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("earned_at DESC").
		Find(&rewards).Error; err != nil {
		utils.LogError("Failed to fetch milestone rewards for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch rewards", nil)
		return
	}

	rows := make([]gin.H, 0, len(rewards))
	for _, reward := range rewards {
		rows = append(rows, gin.H{
			"id":           reward.ID,
			"status":       reward.Status,
			"reward_type":  reward.RewardType,
			"reward_value": reward.RewardValue,
			"earned_at":    reward.EarnedAt.Format("2006-01-02"),
			"expires_at":   reward.ExpiresAt.Format("2006-01-02"),
			"claimed_at":   formatTimePtr(reward.ClaimedAt),
		})
	}

	utils.Success(c, "Milestone rewards retrieved successfully", gin.H{"rewards": rows})
}

// ClaimMilestoneReward marks an available reward as claimed. Claims are
// forward-only: claimed and expired rewards never go back to available.
func ClaimMilestoneReward(c *gin.Context) {
	utils.LogInfo("ClaimMilestoneReward called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	rewardID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid reward ID", nil)
		return
	}

	if err := utils.ExpireMilestoneRewards(user.ID); err != nil {
		utils.LogError("Failed to expire milestone rewards for user %d: %v", user.ID, err)
	}

	var reward models.MilestoneReward
	if err := config.DB.Where("id = ? AND user_id = ?", rewardID, user.ID).First(&reward).Error; err != nil {
		utils.NotFound(c, "Reward not found")
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.MilestoneReward{}).
		Where("id = ? AND status = ?", reward.ID, models.RewardStatusAvailable).
		Updates(map[string]interface{}{
			"status":     models.RewardStatusClaimed,
			"claimed_at": &now,
		})
	if result.Error != nil {
		utils.LogError("Failed to claim milestone reward %d: %v", reward.ID, result.Error)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.Conflict(c, "Reward is no longer available", gin.H{"status": reward.Status})
		return
	}
	utils.LogInfo("User %d claimed milestone reward %d", user.ID, reward.ID)

	utils.Success(c, "Reward claimed successfully", gin.H{
		"id":         reward.ID,
		"status":     models.RewardStatusClaimed,
		"claimed_at": now.Format("2006-01-02 15:04:05"),
	})
}

// SetAccountFrozenRequest represents the freeze toggle body
type SetAccountFrozenRequest struct {
	Frozen *bool `json:"frozen" binding:"required"`
}

// SetLoyaltyAccountFrozen freezes or unfreezes a user's loyalty
// account. Frozen accounts accrue no progress from completed orders.
// Admin only.
func SetLoyaltyAccountFrozen(c *gin.Context) {
	utils.LogInfo("SetLoyaltyAccountFrozen called")

	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var req SetAccountFrozenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	account, err := utils.GetOrCreateLoyaltyAccount(uint(userID))
	if err != nil {
		utils.LogError("Failed to load loyalty account for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load loyalty account", nil)
		return
	}

	if err := config.DB.Model(&models.LoyaltyAccount{}).
		Where("id = ?", account.ID).
		Update("frozen", *req.Frozen).Error; err != nil {
		utils.LogError("Failed to update loyalty account %d: %v", account.ID, err)
		utils.InternalServerError(c, "Failed to update loyalty account", nil)
		return
	}
	utils.LogInfo("Loyalty account for user %d frozen=%t", userID, *req.Frozen)

	utils.Success(c, "Loyalty account updated", gin.H{"user_id": userID, "frozen": *req.Frozen})
}

// CreateLoyaltyConfigRequest represents the loyalty config creation body
type CreateLoyaltyConfigRequest struct {
	MilestoneInterval int     `json:"milestone_interval"`
	RewardType        string  `json:"reward_type" binding:"required"`
	RewardValue       float64 `json:"reward_value"`
	RewardExpiryDays  int     `json:"reward_expiry_days"`
}

// CreateLoyaltyConfig creates a new, inactive loyalty config version.
// Zero interval and expiry fall back to the defaults.
func CreateLoyaltyConfig(c *gin.Context) {
	utils.LogInfo("CreateLoyaltyConfig called")

	var req CreateLoyaltyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.MilestoneInterval < 0 || req.RewardExpiryDays < 0 || req.RewardValue < 0 {
		utils.BadRequest(c, "Config values must be non-negative", nil)
		return
	}
	if req.RewardType != models.RewardTypeFreeMeal && req.RewardType != models.RewardTypeFlatOff {
		utils.BadRequest(c, "Reward type must be free_meal or flat_off", nil)
		return
	}
	if req.MilestoneInterval == 0 {
		req.MilestoneInterval = utils.DefaultMilestoneInterval
	}
	if req.RewardExpiryDays == 0 {
		req.RewardExpiryDays = utils.DefaultRewardExpiryDays
	}

	var maxVersion int
	config.DB.Model(&models.LoyaltyConfig{}).Select("COALESCE(MAX(version), 0)").Scan(&maxVersion)

	cfg := models.LoyaltyConfig{
		Version:           maxVersion + 1,
		MilestoneInterval: req.MilestoneInterval,
		RewardType:        req.RewardType,
		RewardValue:       req.RewardValue,
		RewardExpiryDays:  req.RewardExpiryDays,
	}
	if err := config.DB.Create(&cfg).Error; err != nil {
		utils.LogError("Failed to create loyalty config: %v", err)
		utils.InternalServerError(c, "Failed to create loyalty config", nil)
		return
	}
	utils.LogInfo("Created loyalty config version %d", cfg.Version)

	utils.Created(c, "Loyalty config created", gin.H{"version": cfg.Version, "id": cfg.ID})
}

// SetActiveLoyaltyConfig atomically swaps the active loyalty config
func SetActiveLoyaltyConfig(c *gin.Context) {
	utils.LogInfo("SetActiveLoyaltyConfig called")

	configID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid config ID", nil)
		return
	}

	var cfg models.LoyaltyConfig
	if err := config.DB.First(&cfg, configID).Error; err != nil {
		utils.NotFound(c, "Loyalty config not found")
		return
	}

	activeConfigMu.Lock()
	defer activeConfigMu.Unlock()

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LoyaltyConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.LoyaltyConfig{}).
			Where("id = ?", cfg.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		utils.LogError("Failed to activate loyalty config %d: %v", cfg.ID, err)
		utils.InternalServerError(c, "Failed to activate loyalty config", nil)
		return
	}
	utils.LogInfo("Activated loyalty config version %d", cfg.Version)

	utils.Success(c, "Loyalty config activated", gin.H{"version": cfg.Version, "id": cfg.ID})
}
