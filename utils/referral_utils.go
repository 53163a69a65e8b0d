package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateReferralCode produces a short unique referral code
func GenerateReferralCode() string {
	return "REF-" + strings.ToUpper(uuid.New().String()[:8])
}

// GetActiveReferralConfig loads the active referral config, falling
// back to built-in defaults when none has been configured yet.
func GetActiveReferralConfig() *models.ReferralConfig {
	var cfg models.ReferralConfig
	if err := config.DB.Where("is_active = ?", true).First(&cfg).Error; err != nil {
		return &models.ReferralConfig{
			MinOrdersForQualification: 1,
			ReferralsPerReward:        3,
			MaxActiveRewards:          5,
			RewardType:                models.RewardTypeFlatOff,
			RewardExpiryDays:          DefaultRewardExpiryDays,
		}
	}
	return &cfg
}

// GetOrCreateReferralAccount lazily creates a user's referral account
// with a fresh unique code.
func GetOrCreateReferralAccount(userID uint) (*models.ReferralAccount, error) {
	var account models.ReferralAccount
	err := config.DB.Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account = models.ReferralAccount{
		UserID: userID,
		Code:   GenerateReferralCode(),
	}
	if err := config.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ApplyReferralOrder applies one completed order of the referred user
// to a referral. Orders below the program's minimum order value do not
// count. Returns whether the order counted and whether the referral
// just crossed into qualified. Pure: persistence is the caller's job.
func ApplyReferralOrder(ref *models.Referral, cfg *models.ReferralConfig, orderValue float64) (counted, becameQualified bool) {
	if ref.Status != models.ReferralStatusPending {
		return false, false
	}
	if orderValue < cfg.ReferredUserMinOrderValue {
		return false, false
	}

	ref.OrdersCompleted++
	if ref.OrdersCompleted >= cfg.MinOrdersForQualification {
		ref.Status = models.ReferralStatusQualified
		return true, true
	}
	return true, false
}

// ProcessReferralOnOrderCompleted is the referral engine's entry point,
// invoked once per terminal order via the order-completed fan-out. When
// a referral qualifies, the referrer's totals are recomputed from the
// qualified referral count and a reward is issued on every
// referrals-per-reward multiple, unless the referrer is already holding
// the maximum number of unclaimed rewards.
func ProcessReferralOnOrderCompleted(event OrderCompletedEvent) error {
	var ref models.Referral
	err := config.DB.Where("referred_user_id = ? AND status = ?", event.UserID, models.ReferralStatusPending).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return WrapError(err, "failed to look up referral")
	}

	cfg := GetActiveReferralConfig()

	counted, becameQualified := ApplyReferralOrder(&ref, cfg, event.OrderValue)
	if !counted {
		LogDebug("Order %d (value %.2f) did not count toward referral %d", event.OrderID, event.OrderValue, ref.ID)
		return nil
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"orders_completed": ref.OrdersCompleted}
		if becameQualified {
			now := time.Now()
			updates["status"] = models.ReferralStatusQualified
			updates["qualified_at"] = &now
		}
		if err := tx.Model(&models.Referral{}).Where("id = ?", ref.ID).Updates(updates).Error; err != nil {
			return err
		}

		if !becameQualified {
			return nil
		}

		return creditQualifiedReferral(tx, ref.ReferrerID, cfg)
	})
}

// creditQualifiedReferral recomputes the referrer's totals from the
// qualified referral count and issues a reward when the count lands on
// a referrals-per-reward multiple and the reward cap allows it.
func creditQualifiedReferral(tx *gorm.DB, referrerID uint, cfg *models.ReferralConfig) error {
	var qualified int64
	if err := tx.Model(&models.Referral{}).
		Where("referrer_id = ? AND status = ?", referrerID, models.ReferralStatusQualified).
		Count(&qualified).Error; err != nil {
		return err
	}

	perReward := cfg.ReferralsPerReward
	if perReward <= 0 {
		perReward = 1
	}

	if err := tx.Model(&models.ReferralAccount{}).
		Where("user_id = ?", referrerID).
		Updates(map[string]interface{}{
			"successful_referrals": qualified,
			"current_progress":     int(qualified) % perReward,
		}).Error; err != nil {
		return err
	}

	if qualified == 0 || int(qualified)%perReward != 0 {
		return nil
	}

	var unclaimed int64
	if err := tx.Model(&models.ReferralReward{}).
		Where("user_id = ? AND status = ?", referrerID, models.RewardStatusAvailable).
		Count(&unclaimed).Error; err != nil {
		return err
	}
	if cfg.MaxActiveRewards > 0 && unclaimed >= int64(cfg.MaxActiveRewards) {
		// Reward slot cap reached: the reward is dropped, not queued.
		LogInfo("Referrer %d holds %d unclaimed rewards (cap %d), skipping reward issue", referrerID, unclaimed, cfg.MaxActiveRewards)
		return nil
	}

	now := time.Now()
	reward := models.ReferralReward{
		UserID:      referrerID,
		Status:      models.RewardStatusAvailable,
		RewardType:  cfg.RewardType,
		RewardValue: cfg.RewardValue,
		EarnedAt:    now,
		ExpiresAt:   now.AddDate(0, 0, cfg.RewardExpiryDays),
	}
	if err := tx.Create(&reward).Error; err != nil {
		return err
	}
	LogInfo("Issued referral reward to user %d after %d qualified referrals", referrerID, qualified)
	return nil
}

// ExpireReferralRewards lazily marks overdue available rewards as
// expired. Called before listing or claiming.
func ExpireReferralRewards(userID uint) error {
	return config.DB.Model(&models.ReferralReward{}).
		Where("user_id = ? AND status = ? AND expires_at < ?", userID, models.RewardStatusAvailable, time.Now()).
		Update("status", models.RewardStatusExpired).Error
}
