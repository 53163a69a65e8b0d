package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward status constants. A reward only moves forward:
// available -> claimed or available -> expired, never back.
const (
	RewardStatusAvailable = "available"
	RewardStatusClaimed   = "claimed"
	RewardStatusExpired   = "expired"
)

// Reward type constants
const (
	RewardTypeFreeMeal = "free_meal"
	RewardTypeFlatOff  = "flat_off"
)

// LoyaltyConfig is the versioned milestone program configuration.
type LoyaltyConfig struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Version           int       `json:"version" gorm:"uniqueIndex"`
	IsActive          bool      `json:"is_active" gorm:"index"`
	MilestoneInterval int       `json:"milestone_interval" gorm:"default:10"`
	RewardType        string    `json:"reward_type" gorm:"default:'free_meal'"`
	RewardValue       float64   `json:"reward_value"`
	RewardExpiryDays  int       `json:"reward_expiry_days" gorm:"default:30"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LoyaltyAccount tracks one user's milestone progress. Created lazily
// on first access. Frozen accounts accrue nothing.
type LoyaltyAccount struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `json:"user_id" gorm:"uniqueIndex"`
	Progress           int       `json:"progress"` // 0..interval-1
	TotalOrders        int       `json:"total_orders"`
	MilestonesAchieved int       `json:"milestones_achieved"`
	Frozen             bool      `json:"frozen"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MilestoneReward is a reward issued when a milestone fires.
type MilestoneReward struct {
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

// LoyaltyTransaction is an immutable log entry written for every order
// completion the engine processes, whether or not a milestone fired.
type LoyaltyTransaction struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"index"`
	OrderID        uint      `json:"order_id"`
	ProgressBefore int       `json:"progress_before"`
	ProgressAfter  int       `json:"progress_after"`
	MilestoneFired bool      `json:"milestone_fired"`
	CreatedAt      time.Time `json:"created_at"`
}
