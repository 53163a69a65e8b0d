package utils

import (
	"testing"

	"github.com/Arjun-717/DineDash/models"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceMilestoneAccrual(t *testing.T) {
	account := &models.LoyaltyAccount{}

	for i := 1; i <= 9; i++ {
		outcome := AdvanceMilestone(account, 10)
		assert.False(t, outcome.MilestoneFired, "order %d must not fire a milestone", i)
		assert.Equal(t, i, outcome.ProgressAfter)
	}
	assert.Equal(t, 9, account.Progress)
	assert.Equal(t, 9, account.TotalOrders)
	assert.Equal(t, 0, account.MilestonesAchieved)
}

func TestAdvanceMilestoneFiresAndResets(t *testing.T) {
	account := &models.LoyaltyAccount{Progress: 9, TotalOrders: 9}

	outcome := AdvanceMilestone(account, 10)
	assert.True(t, outcome.MilestoneFired)
	assert.Equal(t, 9, outcome.ProgressBefore)
	assert.Equal(t, 0, outcome.ProgressAfter)
	assert.Equal(t, 0, account.Progress)
	assert.Equal(t, 10, account.TotalOrders)
	assert.Equal(t, 1, account.MilestonesAchieved)
}

func TestAdvanceMilestoneSecondCycle(t *testing.T) {
	account := &models.LoyaltyAccount{}

	fired := 0
	for i := 0; i < 20; i++ {
		if AdvanceMilestone(account, 10).MilestoneFired {
			fired++
		}
	}
	assert.Equal(t, 2, fired)
	assert.Equal(t, 2, account.MilestonesAchieved)
	assert.Equal(t, 0, account.Progress)
	assert.Equal(t, 20, account.TotalOrders)
}

func TestAdvanceMilestoneCustomInterval(t *testing.T) {
	account := &models.LoyaltyAccount{}

	for i := 0; i < 4; i++ {
		assert.False(t, AdvanceMilestone(account, 5).MilestoneFired)
	}
	assert.True(t, AdvanceMilestone(account, 5).MilestoneFired)
}

func TestAdvanceMilestoneZeroIntervalFallsBackToDefault(t *testing.T) {
	account := &models.LoyaltyAccount{}

	fired := false
	for i := 0; i < DefaultMilestoneInterval; i++ {
		fired = AdvanceMilestone(account, 0).MilestoneFired
	}
	assert.True(t, fired)
	assert.Equal(t, DefaultMilestoneInterval, account.TotalOrders)
}
