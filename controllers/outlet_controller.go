package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// ListOutlets returns active outlets
func ListOutlets(c *gin.Context) {
	utils.LogInfo("ListOutlets called")

	var outlets []models.Outlet
	if err := config.DB.Where("is_active = ?", true).Order("name ASC").Find(&outlets).Error; err != nil {
		utils.LogError("Failed to fetch outlets: %v", err)
		utils.InternalServerError(c, "Failed to fetch outlets", nil)
		return
	}

	rows := make([]gin.H, 0, len(outlets))
	for _, outlet := range outlets {
		rows = append(rows, gin.H{
			"id":      outlet.ID,
			"name":    outlet.Name,
			"address": outlet.Address,
			"phone":   outlet.Phone,
		})
	}

	utils.Success(c, "Outlets retrieved successfully", gin.H{"outlets": rows})
}

// OutletRequest represents the admin outlet body
type OutletRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateOutlet adds a restaurant outlet. Admin only.
func CreateOutlet(c *gin.Context) {
	utils.LogInfo("CreateOutlet called")

	var req OutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.Outlet
	if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		utils.Conflict(c, "An outlet with this name already exists", nil)
		return
	}

	outlet := models.Outlet{
		Name:     name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := config.DB.Create(&outlet).Error; err != nil {
		utils.LogError("Failed to create outlet %s: %v", name, err)
		utils.InternalServerError(c, "Failed to create outlet", nil)
		return
	}
	utils.LogInfo("Created outlet %s (ID: %d)", outlet.Name, outlet.ID)

	utils.Created(c, "Outlet created successfully", gin.H{"outlet": outlet})
}

// UpdateOutlet edits outlet details. Admin only.
func UpdateOutlet(c *gin.Context) {
	utils.LogInfo("UpdateOutlet called")

	outletID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid outlet ID", nil)
		return
	}

	var outlet models.Outlet
	if err := config.DB.First(&outlet, outletID).Error; err != nil {
		utils.NotFound(c, "Outlet not found")
		return
	}

	var req OutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":    strings.TrimSpace(req.Name),
		"address": req.Address,
		"phone":   req.Phone,
	}
	if err := config.DB.Model(&outlet).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update outlet %d: %v", outlet.ID, err)
		utils.InternalServerError(c, "Failed to update outlet", nil)
		return
	}
	utils.LogInfo("Updated outlet %d", outlet.ID)

	utils.Success(c, "Outlet updated successfully", gin.H{"id": outlet.ID})
}

// SetOutletActive opens or closes an outlet for new orders
func SetOutletActive(c *gin.Context) {
	utils.LogInfo("SetOutletActive called")

	outletID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid outlet ID", nil)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var outlet models.Outlet
	if err := config.DB.First(&outlet, outletID).Error; err != nil {
		utils.NotFound(c, "Outlet not found")
		return
	}

	if err := config.DB.Model(&outlet).Update("is_active", *req.IsActive).Error; err != nil {
		utils.LogError("Failed to update outlet %d: %v", outlet.ID, err)
		utils.InternalServerError(c, "Failed to update outlet", nil)
		return
	}
	utils.LogInfo("Outlet %s (ID: %d) is_active=%t", outlet.Name, outlet.ID, *req.IsActive)

	utils.Success(c, "Outlet updated successfully", gin.H{"id": outlet.ID, "is_active": *req.IsActive})
}

// GetOutletRevenue reports an outlet's accumulated revenue from
// terminal orders, plus order counts by status. Admin only.
func GetOutletRevenue(c *gin.Context) {
	utils.LogInfo("GetOutletRevenue called")

	outletID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid outlet ID", nil)
		return
	}

	var outlet models.Outlet
	if err := config.DB.First(&outlet, outletID).Error; err != nil {
		utils.NotFound(c, "Outlet not found")
		return
	}

	statusCounts := gin.H{}
	for _, status := range models.AllOrderStatuses() {
		var count int64
		config.DB.Model(&models.Order{}).
			Where("outlet_id = ? AND status = ?", outlet.ID, status).
			Count(&count)
		statusCounts[string(status)] = count
	}

	utils.Success(c, "Outlet revenue retrieved successfully", gin.H{
		"outlet":        outlet.Name,
		"total_revenue": fmt.Sprintf("%.2f", outlet.TotalRevenue),
		"order_counts":  statusCounts,
	})
}
