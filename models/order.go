package models

import (
	"time"
)

// OrderStatus is the closed set of order lifecycle states. Transitions
// are governed by the table below; anything outside it is rejected.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Order type constants
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Actor constants for status changes and cancellations
const (
	ActorCustomer = "customer"
	ActorStaff    = "staff"
)

// orderTransitions is the full transition table. Terminal states map to
// an empty set, which is what makes terminal side effects idempotent:
// a second attempt at the same transition fails here.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
}

// AllOrderStatuses returns every known status in lifecycle order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s
func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the move s -> target is in the table
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the states reachable from s
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// TimestampColumn returns the order column stamped when s is entered.
// The pending timestamp is the row's created_at, so it has no column here.
func (s OrderStatus) TimestampColumn() (string, bool) {
	switch s {
	case OrderStatusConfirmed:
		return "confirmed_at", true
	case OrderStatusPreparing:
		return "preparing_at", true
	case OrderStatusReady:
		return "ready_at", true
	case OrderStatusOutForDelivery:
		return "out_for_delivery_at", true
	case OrderStatusDelivered:
		return "delivered_at", true
	case OrderStatusCompleted:
		return "completed_at", true
	case OrderStatusCancelled:
		return "cancelled_at", true
	}
	return "", false
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `json:"order_number" gorm:"uniqueIndex"`
	UserID      uint        `json:"user_id" gorm:"index"`
	User        User        `json:"user" gorm:"foreignKey:UserID"`
	OutletID    uint        `json:"outlet_id"`
	Outlet      Outlet      `json:"outlet" gorm:"foreignKey:OutletID"`
	OrderType   string      `json:"order_type"` // delivery or pickup
	Status      OrderStatus `json:"status" gorm:"type:varchar(32);default:'pending'"`
	DistanceKm  float64     `json:"distance_km"`

	// Price snapshot, immutable once the order is created
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`

	CouponID   *uint  `json:"coupon_id,omitempty"`
	CouponCode string `json:"coupon_code,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledBy        string `json:"cancelled_by,omitempty"` // customer or staff

	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	PreparingAt      *time.Time `json:"preparing_at,omitempty"`
	ReadyAt          *time.Time `json:"ready_at,omitempty"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrderItems []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	OrderID      uint     `json:"order_id" gorm:"index"`
	MenuItemID   uint     `json:"menu_item_id"`
	MenuItem     MenuItem `json:"menu_item" gorm:"foreignKey:MenuItemID"`
	Name         string   `json:"name"`  // snapshot at checkout
	Price        float64  `json:"price"` // unit price snapshot at checkout
	Quantity     int      `json:"quantity"`
	Total        float64  `json:"total"`
	Instructions string   `json:"instructions,omitempty"`
}
