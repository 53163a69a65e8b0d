package controllers

import (
	"strconv"
	"strings"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
)

// ListMenuItems returns active menu items, optionally filtered by
// category or search term
func ListMenuItems(c *gin.Context) {
	utils.LogInfo("ListMenuItems called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.MenuItem{}).Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := strconv.Atoi(categoryID)
		if err != nil {
			utils.BadRequest(c, "Invalid category ID", nil)
			return
		}
		query = query.Where("category_id = ?", id)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count menu items: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", nil)
		return
	}
	pagination.SetTotal(total)

	var items []models.MenuItem
	if err := query.Preload("Category").Preload("AllowedOutlets").
		Order("name ASC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch menu items: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Menu retrieved successfully", items, pagination)
}

// GetMenuItem returns a single menu item with its category and outlet
// restrictions
func GetMenuItem(c *gin.Context) {
	utils.LogInfo("GetMenuItem called")

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid menu item ID", nil)
		return
	}

	var item models.MenuItem
	if err := config.DB.Preload("Category").Preload("AllowedOutlets").First(&item, itemID).Error; err != nil {
		utils.NotFound(c, "Menu item not found")
		return
	}

	utils.Success(c, "Menu item retrieved successfully", gin.H{"item": item})
}

// MenuItemRequest represents the admin create/update body
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
	IsVeg       bool    `json:"is_veg"`
	MinOrderQty int     `json:"min_order_qty"`
	OutletIDs   []uint  `json:"outlet_ids"`
}

// CreateMenuItem adds a dish to the menu. Admin only.
func CreateMenuItem(c *gin.Context) {
	utils.LogInfo("CreateMenuItem called")

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Price <= 0 {
		utils.BadRequest(c, "Price must be positive", nil)
		return
	}
	if req.MinOrderQty < 0 {
		utils.BadRequest(c, "Minimum order quantity cannot be negative", nil)
		return
	}
	if req.MinOrderQty == 0 {
		req.MinOrderQty = 1
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.BadRequest(c, "Category not found", nil)
		return
	}

	item := models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		IsVeg:       req.IsVeg,
		MinOrderQty: req.MinOrderQty,
	}
	for _, id := range req.OutletIDs {
		item.AllowedOutlets = append(item.AllowedOutlets, models.MenuItemOutlet{OutletID: id})
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to create menu item %s: %v", item.Name, err)
		utils.InternalServerError(c, "Failed to create menu item", nil)
		return
	}
	utils.LogInfo("Created menu item %s (ID: %d)", item.Name, item.ID)

	utils.Created(c, "Menu item created successfully", gin.H{"item": item})
}

// UpdateMenuItem edits a dish. Price changes never touch existing
// orders, which carry their own price snapshot.
func UpdateMenuItem(c *gin.Context) {
	utils.LogInfo("UpdateMenuItem called")

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid menu item ID", nil)
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		utils.NotFound(c, "Menu item not found")
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Price <= 0 {
		utils.BadRequest(c, "Price must be positive", nil)
		return
	}
	if req.MinOrderQty <= 0 {
		req.MinOrderQty = 1
	}

	updates := map[string]interface{}{
		"name":          strings.TrimSpace(req.Name),
		"description":   req.Description,
		"price":         req.Price,
		"category_id":   req.CategoryID,
		"image_url":     req.ImageURL,
		"is_veg":        req.IsVeg,
		"min_order_qty": req.MinOrderQty,
	}
	if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update menu item %d: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update menu item", nil)
		return
	}

	if req.OutletIDs != nil {
		if err := config.DB.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemOutlet{}).Error; err != nil {
			utils.LogError("Failed to reset outlet restrictions for item %d: %v", item.ID, err)
			utils.InternalServerError(c, "Failed to update menu item", nil)
			return
		}
		for _, id := range req.OutletIDs {
			config.DB.Create(&models.MenuItemOutlet{MenuItemID: item.ID, OutletID: id})
		}
	}
	utils.LogInfo("Updated menu item %s (ID: %d)", item.Name, item.ID)

	utils.Success(c, "Menu item updated successfully", gin.H{"id": item.ID})
}

// SetMenuItemActive toggles a dish's availability
func SetMenuItemActive(c *gin.Context) {
	utils.LogInfo("SetMenuItemActive called")

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid menu item ID", nil)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		utils.NotFound(c, "Menu item not found")
		return
	}

	if err := config.DB.Model(&item).Update("is_active", *req.IsActive).Error; err != nil {
		utils.LogError("Failed to update menu item %d: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update menu item", nil)
		return
	}
	utils.LogInfo("Menu item %s (ID: %d) is_active=%t", item.Name, item.ID, *req.IsActive)

	utils.Success(c, "Menu item updated successfully", gin.H{"id": item.ID, "is_active": *req.IsActive})
}

// CategoryRequest represents the admin category body
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a menu category. Admin only.
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		utils.Conflict(c, "A category with this name already exists", nil)
		return
	}

	category := models.Category{Name: name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category %s: %v", name, err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}
	utils.LogInfo("Created category %s (ID: %d)", category.Name, category.ID)

	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// ListCategories returns all categories with their active item counts
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	rows := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		var count int64
		config.DB.Model(&models.MenuItem{}).
			Where("category_id = ? AND is_active = ?", category.ID, true).
			Count(&count)
		rows = append(rows, gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
			"item_count":  count,
		})
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": rows})
}
