package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer, staff member or admin in the system
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked"`
	IsStaff     bool      `json:"is_staff" gorm:"default:false"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// Outlet represents a restaurant outlet orders are placed against
type Outlet struct {
	gorm.Model
	Name         string  `json:"name" gorm:"uniqueIndex;not null"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
	TotalRevenue float64 `json:"total_revenue" gorm:"default:0"`
}

// Category groups menu items (e.g. starters, mains, beverages)
type Category struct {
	gorm.Model
	Name        string     `json:"name" gorm:"uniqueIndex"`
	Description string     `json:"description"`
	MenuItems   []MenuItem `json:"menu_items,omitempty"`
	Blocked     bool       `json:"blocked" gorm:"default:false"`
}

// MenuItem represents a dish on the menu. Price is the current price;
// orders snapshot it at checkout and are never affected by later edits.
type MenuItem struct {
	gorm.Model
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  uint     `json:"category_id"`
	Category    Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string   `json:"image_url"`
	IsActive    bool     `json:"is_active" gorm:"default:true"`
	IsVeg       bool     `json:"is_veg" gorm:"default:true"`
	MinOrderQty int      `json:"min_order_qty" gorm:"default:1"`

	// Outlets the item is restricted to. Empty means available everywhere.
	AllowedOutlets []MenuItemOutlet `json:"allowed_outlets,omitempty" gorm:"foreignKey:MenuItemID"`
}

// MenuItemOutlet restricts a menu item to a specific outlet
type MenuItemOutlet struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MenuItemID uint `json:"menu_item_id" gorm:"index"`
	OutletID   uint `json:"outlet_id"`
}
