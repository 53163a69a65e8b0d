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

// GetReferralSummary returns the user's referral code and progress.
// The account is created lazily on first access.
func GetReferralSummary(c *gin.Context) {
	utils.LogInfo("GetReferralSummary called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	account, err := utils.GetOrCreateReferralAccount(user.ID)
	if err != nil {
		utils.LogError("Failed to load referral account for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load referral summary", nil)
		return
	}

	cfg := utils.GetActiveReferralConfig()

	var pending int64
	config.DB.Model(&models.Referral{}).
		Where("referrer_id = ? AND status = ?", user.ID, models.ReferralStatusPending).
		Count(&pending)

	utils.Success(c, "Referral summary retrieved successfully", gin.H{
		"code":                 account.Code,
		"total_referrals":      account.TotalReferrals,
		"successful_referrals": account.SuccessfulReferrals,
		"pending_referrals":    pending,
		"current_progress":     account.CurrentProgress,
		"referrals_per_reward": cfg.ReferralsPerReward,
	})
}

// ListReferralRewards returns the user's referral rewards. Overdue
// rewards are expired lazily before listing.
func ListReferralRewards(c *gin.Context) {
	utils.LogInfo("ListReferralRewards called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	if err := utils.ExpireReferralRewards(user.ID); err != nil {
		utils.LogError("Failed to expire referral rewards for user %d: %v", user.ID, err)
	}

	var rewards []models.ReferralReward
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("earned_at DESC").
		Find(&rewards).Error; err != nil {
		utils.LogError("Failed to fetch referral rewards for user %d: %v", user.ID, err)
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

	utils.Success(c, "Referral rewards retrieved successfully", gin.H{"rewards": rows})
}

// ClaimReferralReward marks an available referral reward as claimed
func ClaimReferralReward(c *gin.Context) {
	utils.LogInfo("ClaimReferralReward called")

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

	if err := utils.ExpireReferralRewards(user.ID); err != nil {
		utils.LogError("Failed to expire referral rewards for user %d: %v", user.ID, err)
	}

	var reward models.ReferralReward
	if err := config.DB.Where("id = ? AND user_id = ?", rewardID, user.ID).First(&reward).Error; err != nil {
		utils.NotFound(c, "Reward not found")
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.ReferralReward{}).
		Where("id = ? AND status = ?", reward.ID, models.RewardStatusAvailable).
		Updates(map[string]interface{}{
			"status":     models.RewardStatusClaimed,
			"claimed_at": &now,
		})
	if result.Error != nil {
		utils.LogError("Failed to claim referral reward %d: %v", reward.ID, result.Error)
		utils.InternalServerError(c, "Failed to claim reward", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.Conflict(c, "Reward is no longer available", gin.H{"status": reward.Status})
		return
	}
	utils.LogInfo("User %d claimed referral reward %d", user.ID, reward.ID)

	utils.Success(c, "Reward claimed successfully", gin.H{
		"id":         reward.ID,
		"status":     models.RewardStatusClaimed,
		"claimed_at": now.Format("2006-01-02 15:04:05"),
	})
}

// CreateReferralConfigRequest represents the referral config creation body
type CreateReferralConfigRequest struct {
	MinOrdersForQualification int     `json:"min_orders_for_qualification"`
	ReferredUserMinOrderValue float64 `json:"referred_user_min_order_value"`
	ReferralsPerReward        int     `json:"referrals_per_reward"`
	MaxActiveRewards          int     `json:"max_active_rewards"`
	RewardType                string  `json:"reward_type" binding:"required"`
	RewardValue               float64 `json:"reward_value"`
	RewardExpiryDays          int     `json:"reward_expiry_days"`
}

// CreateReferralConfig creates a new, inactive referral config version
func CreateReferralConfig(c *gin.Context) {
	utils.LogInfo("CreateReferralConfig called")

	var req CreateReferralConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.MinOrdersForQualification < 0 || req.ReferredUserMinOrderValue < 0 ||
		req.ReferralsPerReward < 0 || req.MaxActiveRewards < 0 ||
		req.RewardValue < 0 || req.RewardExpiryDays < 0 {
		utils.BadRequest(c, "Config values must be non-negative", nil)
		return
	}
	if req.RewardType != models.RewardTypeFreeMeal && req.RewardType != models.RewardTypeFlatOff {
		utils.BadRequest(c, "Reward type must be free_meal or flat_off", nil)
		return
	}
	if req.MinOrdersForQualification == 0 {
		req.MinOrdersForQualification = 1
	}
	if req.ReferralsPerReward == 0 {
		req.ReferralsPerReward = 1
	}
	if req.RewardExpiryDays == 0 {
		req.RewardExpiryDays = utils.DefaultRewardExpiryDays
	}

	var maxVersion int
	config.DB.Model(&models.ReferralConfig{}).Select("COALESCE(MAX(version), 0)").Scan(&maxVersion)

	cfg := models.ReferralConfig{
		Version:                   maxVersion + 1,
		MinOrdersForQualification: req.MinOrdersForQualification,
		ReferredUserMinOrderValue: req.ReferredUserMinOrderValue,
		ReferralsPerReward:        req.ReferralsPerReward,
		MaxActiveRewards:          req.MaxActiveRewards,
		RewardType:                req.RewardType,
		RewardValue:               req.RewardValue,
		RewardExpiryDays:          req.RewardExpiryDays,
	}
	if err := config.DB.Create(&cfg).Error; err != nil {
		utils.LogError("Failed to create referral config: %v", err)
		utils.InternalServerError(c, "Failed to create referral config", nil)
		return
	}
	utils.LogInfo("Created referral config version %d", cfg.Version)

	utils.Created(c, "Referral config created", gin.H{"version": cfg.Version, "id": cfg.ID})
}

// SetActiveReferralConfig atomically swaps the active referral config
func SetActiveReferralConfig(c *gin.Context) {
	utils.LogInfo("SetActiveReferralConfig called")

	configID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid config ID", nil)
		return
	}

	var cfg models.ReferralConfig
	if err := config.DB.First(&cfg, configID).Error; err != nil {
		utils.NotFound(c, "Referral config not found")
		return
	}

	activeConfigMu.Lock()
	defer activeConfigMu.Unlock()

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReferralConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.ReferralConfig{}).
			Where("id = ?", cfg.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		utils.LogError("Failed to activate referral config %d: %v", cfg.ID, err)
		utils.InternalServerError(c, "Failed to activate referral config", nil)
		return
	}
	utils.LogInfo("Activated referral config version %d", cfg.Version)

	utils.Success(c, "Referral config activated", gin.H{"version": cfg.Version, "id": cfg.ID})
}
