package utils

// OrderCompletedEvent is emitted once when an order reaches a terminal
// success state (delivered or completed).
type OrderCompletedEvent struct {
	OrderID uint
	UserID  uint
	Total   float64
	// OrderValue is the goods subtotal, the figure program thresholds
	// (referral minimum order value) compare against.
	OrderValue float64
}

// OrderCompletedHandler consumes an OrderCompletedEvent. Handler errors
// are logged and never propagate: the order transition is the source of
// truth and reward bookkeeping is best-effort.
type OrderCompletedHandler struct {
	Name   string
	Handle func(OrderCompletedEvent) error
}

var orderCompletedHandlers []OrderCompletedHandler

// RegisterOrderCompletedHandler appends a handler to the fan-out chain.
// Handlers run synchronously in registration order.
func RegisterOrderCompletedHandler(h OrderCompletedHandler) {
	orderCompletedHandlers = append(orderCompletedHandlers, h)
}

// EmitOrderCompleted fans the event out to all registered handlers.
func EmitOrderCompleted(event OrderCompletedEvent) {
	for _, h := range orderCompletedHandlers {
		if err := h.Handle(event); err != nil {
			LogError("Order completed handler %s failed for order %d: %v", h.Name, event.OrderID, err)
		}
	}
}
