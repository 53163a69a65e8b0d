package config

import (
	"fmt"
	"os"

	"github.com/Arjun-717/DineDash/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
	}

	return config, nil
}

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Outlet{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemOutlet{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponOutlet{},
		&models.CouponItem{},
		&models.CouponCategory{},
		&models.DeliveryFeeConfig{},
		&models.DeliveryFeeTier{},
		&models.DeliveryFeeBracket{},
		&models.PayoutConfig{},
		&models.PayoutTier{},
		&models.LoyaltyConfig{},
		&models.LoyaltyAccount{},
		&models.MilestoneReward{},
		&models.LoyaltyTransaction{},
		&models.ReferralConfig{},
		&models.ReferralAccount{},
		&models.Referral{},
		&models.ReferralReward{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	ensureCouponCodeIndex()
}

// ensureCouponCodeIndex makes coupon code lookups case-insensitive at
// the unique-index level so two codes differing only in case collide.
func ensureCouponCodeIndex() {
	var indexExists bool
	err := DB.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM pg_indexes
			WHERE indexname = 'idx_coupons_code_ci'
		)
	`).Scan(&indexExists).Error
	if err != nil {
		panic(fmt.Sprintf("Failed to check coupon index: %v", err))
	}

	if !indexExists {
		err = DB.Exec(`CREATE UNIQUE INDEX idx_coupons_code_ci ON coupons (LOWER(code)) WHERE deleted_at IS NULL`).Error
		if err != nil {
			panic(fmt.Sprintf("Failed to create coupon index: %v", err))
		}
	}
}
