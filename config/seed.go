package config

import (
	"log"
	"os"

	"github.com/Arjun-717/DineDash/models"
	"golang.org/x/crypto/bcrypt"
)

// EnsureSeedData creates the baseline records a fresh install needs:
// an admin account, a default outlet with sample menu, and version 1 of
// each program config. Existing rows are left untouched.
func EnsureSeedData() {
	seedAdmin()
	seedOutletAndMenu()
	seedDeliveryFeeConfig()
	seedPayoutConfig()
	seedLoyaltyConfig()
	seedReferralConfig()
}

func seedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:  "admin",
		Email:     "admin@dinedash.local",
		Password:  string(hash),
		FirstName: "Admin",
		IsStaff:   true,
		IsAdmin:   true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Seeded default admin user")
}

func seedOutletAndMenu() {
	var count int64
	DB.Model(&models.Outlet{}).Count(&count)
	if count > 0 {
		return
	}

	outlet := models.Outlet{
		Name:     "DineDash Central",
		Address:  "42 Market Road",
		Phone:    "+91-98765-43210",
		IsActive: true,
	}
	if err := DB.Create(&outlet).Error; err != nil {
		log.Printf("Failed to seed outlet: %v", err)
		return
	}

	mains := models.Category{Name: "Mains", Description: "Main course dishes"}
	beverages := models.Category{Name: "Beverages", Description: "Drinks and refreshers"}
	DB.Create(&mains)
	DB.Create(&beverages)

	items := []models.MenuItem{
		{Name: "Paneer Butter Masala", Price: 240, CategoryID: mains.ID, IsActive: true, IsVeg: true, MinOrderQty: 1},
		{Name: "Chicken Biryani", Price: 280, CategoryID: mains.ID, IsActive: true, IsVeg: false, MinOrderQty: 1},
		{Name: "Fresh Lime Soda", Price: 60, CategoryID: beverages.ID, IsActive: true, IsVeg: true, MinOrderQty: 1},
	}
	for i := range items {
		DB.Create(&items[i])
	}
	log.Println("Seeded default outlet and sample menu")
}

func seedDeliveryFeeConfig() {
	var count int64
	DB.Model(&models.DeliveryFeeConfig{}).Count(&count)
	if count > 0 {
		return
	}

	mid := func(v float64) *float64 { return &v }
	brackets := func(perKm float64) []models.DeliveryFeeBracket {
		return []models.DeliveryFeeBracket{
			{Position: 0, OrderMin: 0, OrderMax: mid(200), BaseFee: 30, PerKmFee: perKm},
			{Position: 1, OrderMin: 200, OrderMax: mid(500), BaseFee: 20, PerKmFee: perKm},
			{Position: 2, OrderMin: 500, OrderMax: nil, BaseFee: 0, PerKmFee: 0},
		}
	}

	cfg := models.DeliveryFeeConfig{
		Version:  1,
		IsActive: true,
		Notes:    "Initial fee schedule",
		Tiers: []models.DeliveryFeeTier{
			{Position: 0, DistanceMin: 0, DistanceMax: 2, Brackets: brackets(0)},
			{Position: 1, DistanceMin: 2, DistanceMax: 10, Brackets: brackets(10)},
		},
	}
	if err := DB.Create(&cfg).Error; err != nil {
		log.Printf("Failed to seed delivery fee config: %v", err)
		return
	}
	log.Println("Seeded delivery fee config v1")
}

func seedPayoutConfig() {
	var count int64
	DB.Model(&models.PayoutConfig{}).Count(&count)
	if count > 0 {
		return
	}

	cfg := models.PayoutConfig{
		Version:  1,
		IsActive: true,
		Notes:    "Initial payout schedule",
		Tiers: []models.PayoutTier{
			{Position: 0, DistanceMin: 0, DistanceMax: 2, BasePayout: 25, PerKmPayout: 0},
			{Position: 1, DistanceMin: 2, DistanceMax: 10, BasePayout: 25, PerKmPayout: 8},
		},
	}
	if err := DB.Create(&cfg).Error; err != nil {
		log.Printf("Failed to seed payout config: %v", err)
		return
	}
	log.Println("Seeded payout config v1")
}

func seedLoyaltyConfig() {
	var count int64
	DB.Model(&models.LoyaltyConfig{}).Count(&count)
	if count > 0 {
		return
	}

	cfg := models.LoyaltyConfig{
		Version:           1,
		IsActive:          true,
		MilestoneInterval: 10,
		RewardType:        models.RewardTypeFreeMeal,
		RewardValue:       0,
		RewardExpiryDays:  30,
	}
	if err := DB.Create(&cfg).Error; err != nil {
		log.Printf("Failed to seed loyalty config: %v", err)
		return
	}
	log.Println("Seeded loyalty config v1")
}

func seedReferralConfig() {
	var count int64
	DB.Model(&models.ReferralConfig{}).Count(&count)
	if count > 0 {
		return
	}

	cfg := models.ReferralConfig{
		Version:                   1,
		IsActive:                  true,
		MinOrdersForQualification: 1,
		ReferredUserMinOrderValue: 200,
		ReferralsPerReward:        3,
		MaxActiveRewards:          5,
		RewardType:                models.RewardTypeFlatOff,
		RewardValue:               100,
		RewardExpiryDays:          30,
	}
	if err := DB.Create(&cfg).Error; err != nil {
		log.Printf("Failed to seed referral config: %v", err)
		return
	}
	log.Println("Seeded referral config v1")
}
