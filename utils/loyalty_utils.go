package utils

import (
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"gorm.io/gorm"
)

// MilestoneOutcome describes one milestone engine step.
type MilestoneOutcome struct {
	ProgressBefore int
	ProgressAfter  int
	MilestoneFired bool
}

// AdvanceMilestone applies one completed order to the account. When
// progress reaches the configured interval it resets to zero and the
// milestone counter increments. Pure: persistence is the caller's job.
func AdvanceMilestone(account *models.LoyaltyAccount, interval int) MilestoneOutcome {
	if interval <= 0 {
		interval = DefaultMilestoneInterval
	}

	outcome := MilestoneOutcome{ProgressBefore: account.Progress}

	account.Progress++
	account.TotalOrders++
	if account.Progress == interval {
		account.Progress = 0
		account.MilestonesAchieved++
		outcome.MilestoneFired = true
	}

	outcome.ProgressAfter = account.Progress
	return outcome
}

// GetActiveLoyaltyConfig loads the active loyalty config, falling back
// to built-in defaults when none has been configured yet.
func GetActiveLoyaltyConfig() *models.LoyaltyConfig {
	var cfg models.LoyaltyConfig
	if err := config.DB.Where("is_active = ?", true).First(&cfg).Error; err != nil {
		return &models.LoyaltyConfig{
			MilestoneInterval: DefaultMilestoneInterval,
			RewardType:        models.RewardTypeFreeMeal,
			RewardExpiryDays:  DefaultRewardExpiryDays,
		}
	}
	return &cfg
}

// GetOrCreateLoyaltyAccount lazily creates the user's loyalty account
// on first access.
func GetOrCreateLoyaltyAccount(userID uint) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	err := config.DB.Where(models.LoyaltyAccount{UserID: userID}).FirstOrCreate(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ProcessLoyaltyOnOrderCompleted is the milestone engine's entry point,
// invoked once per terminal order via the order-completed fan-out.
// Frozen accounts accrue nothing. Every processed order writes an
// immutable transaction log row; a fired milestone additionally issues
// an expiring reward.
func ProcessLoyaltyOnOrderCompleted(event OrderCompletedEvent) error {
	account, err := GetOrCreateLoyaltyAccount(event.UserID)
	if err != nil {
		return WrapError(err, "failed to load loyalty account")
	}

	if account.Frozen {
		LogInfo("Loyalty account for user %d is frozen, skipping order %d", event.UserID, event.OrderID)
		return nil
	}

	cfg := GetActiveLoyaltyConfig()
	outcome := AdvanceMilestone(account, cfg.MilestoneInterval)

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LoyaltyAccount{}).
			Where("id = ?", account.ID).
			Updates(map[string]interface{}{
				"progress":            account.Progress,
				"total_orders":        account.TotalOrders,
				"milestones_achieved": account.MilestonesAchieved,
			}).Error; err != nil {
			return err
		}

		logEntry := models.LoyaltyTransaction{
			UserID:         event.UserID,
			OrderID:        event.OrderID,
			ProgressBefore: outcome.ProgressBefore,
			ProgressAfter:  outcome.ProgressAfter,
			MilestoneFired: outcome.MilestoneFired,
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			return err
		}

		if outcome.MilestoneFired {
			now := time.Now()
			reward := models.MilestoneReward{
				UserID:      event.UserID,
				Status:      models.RewardStatusAvailable,
				RewardType:  cfg.RewardType,
				RewardValue: cfg.RewardValue,
				EarnedAt:    now,
				ExpiresAt:   now.AddDate(0, 0, cfg.RewardExpiryDays),
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
			LogInfo("Milestone %d reached for user %d, issued %s reward expiring %s",
				account.MilestonesAchieved, event.UserID, reward.RewardType, reward.ExpiresAt.Format("2006-01-02"))
		}

		return nil
	})
}

// ExpireMilestoneRewards lazily marks overdue available rewards as
// expired. Called before listing or claiming.
func ExpireMilestoneRewards(userID uint) error {
	return config.DB.Model(&models.MilestoneReward{}).
		Where("user_id = ? AND status = ? AND expires_at < ?", userID, models.RewardStatusAvailable, time.Now()).
		Update("status", models.RewardStatusExpired).Error
}
