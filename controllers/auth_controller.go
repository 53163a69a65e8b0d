package controllers

import (
	"strings"
	"time"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the Gin context
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

// RegisterUser creates a new customer account. A valid referral code
// links the new user to the referrer with a pending referral; the
// referral qualifies later, once the user completes enough orders.
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration with taken email/username: %s", req.Email)
		utils.Conflict(c, "Email or username already in use", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}
	utils.LogInfo("Created user ID: %d", user.ID)

	referralApplied := false
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		if err := linkReferral(user.ID, code); err != nil {
			// Registration succeeds regardless; a bad code just doesn't link.
			utils.LogError("Failed to link referral code %s for user %d: %v", code, user.ID, err)
		} else {
			referralApplied = true
		}
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.Created(c, "Account created successfully", gin.H{
		"user_id":          user.ID,
		"username":         user.Username,
		"token":            token,
		"referral_applied": referralApplied,
	})
}

// linkReferral creates the pending referral for a new user who signed
// up with someone's code
func linkReferral(newUserID uint, code string) error {
	var account models.ReferralAccount
	if err := config.DB.Where("code = ?", strings.ToUpper(code)).First(&account).Error; err != nil {
		return utils.WrapError(err, "referral code not found")
	}
	if account.UserID == newUserID {
		return utils.NewError("cannot refer yourself")
	}

	referral := models.Referral{
		ReferrerID:     account.UserID,
		ReferredUserID: newUserID,
		Status:         models.ReferralStatusPending,
	}
	if err := config.DB.Create(&referral).Error; err != nil {
		return err
	}

	return config.DB.Model(&models.ReferralAccount{}).
		Where("id = ?", account.ID).
		UpdateColumn("total_referrals", account.TotalReferrals+1).Error
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser authenticates a user and returns a JWT
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login with unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Wrong password for user %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())

	utils.Success(c, "Login successful", gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"is_staff": user.IsStaff,
		"is_admin": user.IsAdmin,
		"token":    token,
	})
}
