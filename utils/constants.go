package utils

// Application constants
const (
	// Application name
	AppName = "DineDash"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Flat tax rate applied to the order subtotal
	TaxRate = 0.08

	// Fallback milestone interval when no loyalty config is active
	DefaultMilestoneInterval = 10

	// Fallback reward expiry in days
	DefaultRewardExpiryDays = 30

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8
)
