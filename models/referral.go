package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral status constants
const (
	ReferralStatusPending   = "pending"
	ReferralStatusQualified = "qualified"
)

// ReferralConfig is the versioned referral program configuration.
type ReferralConfig struct {
	ID                        uint      `gorm:"primaryKey" json:"id"`
	Version                   int       `json:"version" gorm:"uniqueIndex"`
	IsActive                  bool      `json:"is_active" gorm:"index"`
	MinOrdersForQualification int       `json:"min_orders_for_qualification" gorm:"default:1"`
	ReferredUserMinOrderValue float64   `json:"referred_user_min_order_value"`
	ReferralsPerReward        int       `json:"referrals_per_reward" gorm:"default:3"`
	MaxActiveRewards          int       `json:"max_active_rewards" gorm:"default:5"`
	RewardType                string    `json:"reward_type" gorm:"default:'flat_off'"`
	RewardValue               float64   `json:"reward_value"`
	RewardExpiryDays          int       `json:"reward_expiry_days" gorm:"default:30"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// ReferralAccount aggregates one referrer's code and running totals.
type ReferralAccount struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `json:"user_id" gorm:"uniqueIndex"`
	Code                string    `json:"code" gorm:"uniqueIndex;size:20"`
	TotalReferrals      int       `json:"total_referrals"`
	SuccessfulReferrals int       `json:"successful_referrals"`
	CurrentProgress     int       `json:"current_progress"` // toward next reward
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Referral links a referrer to a referred user. Each user can only be
// referred once. OrdersCompleted counts the referred user's completed
// orders that met the program's minimum order value.
type Referral struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ReferrerID      uint           `json:"referrer_id" gorm:"index"`
	ReferredUserID  uint           `json:"referred_user_id" gorm:"uniqueIndex"`
	Status          string         `json:"status" gorm:"default:'pending'"`
	OrdersCompleted int            `json:"orders_completed"`
	QualifiedAt     *time.Time     `json:"qualified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// ReferralReward is a reward issued to a referrer every
// referrals-per-reward qualified referrals.
type ReferralReward struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"index"`
	Status      string         `json:"status" gorm:"default:'available'"`
	RewardType  string         `json:"reward_type"`
	RewardValue float64        `json:"reward_value"`
	EarnedAt    time.Time      `json:"earned_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	ClaimedAt   *time.Time     `json:"claimed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
