package utils

import (
	"strings"
	"testing"

	"github.com/Arjun-717/DineDash/models"
	"github.com/stretchr/testify/assert"
)

func referralTestConfig() *models.ReferralConfig {
	return &models.ReferralConfig{
		MinOrdersForQualification: 1,
		ReferredUserMinOrderValue: 200,
		ReferralsPerReward:        3,
		MaxActiveRewards:          5,
	}
}

func TestApplyReferralOrderBelowMinValueDoesNotCount(t *testing.T) {
	ref := &models.Referral{Status: models.ReferralStatusPending}

	counted, qualified := ApplyReferralOrder(ref, referralTestConfig(), 150)
	assert.False(t, counted)
	assert.False(t, qualified)
	assert.Equal(t, 0, ref.OrdersCompleted)
	assert.Equal(t, models.ReferralStatusPending, ref.Status)
}

func TestApplyReferralOrderQualifiesAtThreshold(t *testing.T) {
	ref := &models.Referral{Status: models.ReferralStatusPending}

	counted, qualified := ApplyReferralOrder(ref, referralTestConfig(), 250)
	assert.True(t, counted)
	assert.True(t, qualified)
	assert.Equal(t, 1, ref.OrdersCompleted)
	assert.Equal(t, models.ReferralStatusQualified, ref.Status)
}

func TestApplyReferralOrderExactMinValueCounts(t *testing.T) {
	ref := &models.Referral{Status: models.ReferralStatusPending}

	counted, _ := ApplyReferralOrder(ref, referralTestConfig(), 200)
	assert.True(t, counted)
}

func TestApplyReferralOrderMultiOrderQualification(t *testing.T) {
	cfg := referralTestConfig()
	cfg.MinOrdersForQualification = 3
	ref := &models.Referral{Status: models.ReferralStatusPending}

	counted, qualified := ApplyReferralOrder(ref, cfg, 300)
	assert.True(t, counted)
	assert.False(t, qualified)

	counted, qualified = ApplyReferralOrder(ref, cfg, 300)
	assert.True(t, counted)
	assert.False(t, qualified)

	counted, qualified = ApplyReferralOrder(ref, cfg, 300)
	assert.True(t, counted)
	assert.True(t, qualified)
	assert.Equal(t, 3, ref.OrdersCompleted)
}

func TestApplyReferralOrderAlreadyQualifiedIsNoOp(t *testing.T) {
	ref := &models.Referral{Status: models.ReferralStatusQualified, OrdersCompleted: 1}

	counted, qualified := ApplyReferralOrder(ref, referralTestConfig(), 500)
	assert.False(t, counted)
	assert.False(t, qualified)
	assert.Equal(t, 1, ref.OrdersCompleted)
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()
	assert.True(t, strings.HasPrefix(code, "REF-"))
	assert.Len(t, code, 12)
	assert.Equal(t, strings.ToUpper(code), code)

	assert.NotEqual(t, code, GenerateReferralCode())
}
