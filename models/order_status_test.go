package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitionTable(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
		OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered:      {},
		OrderStatusCompleted:      {},
		OrderStatusCancelled:      {},
	}

	for _, from := range AllOrderStatuses() {
		allowedSet := make(map[OrderStatus]bool)
		for _, to := range allowed[from] {
			allowedSet[to] = true
		}
		for _, to := range AllOrderStatuses() {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusTerminalStates(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusDelivered: true,
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
	}
	for _, status := range AllOrderStatuses() {
		assert.Equal(t, terminal[status], status.IsTerminal(), "terminal check for %s", status)
		if terminal[status] {
			assert.Empty(t, status.AllowedTransitions(), "%s must allow no transitions", status)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range AllOrderStatuses() {
		assert.True(t, status.IsValid(), "%s should be valid", status)
	}
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatusSelfTransitionRejected(t *testing.T) {
	for _, status := range AllOrderStatuses() {
		assert.False(t, status.CanTransitionTo(status), "%s -> %s must be rejected", status, status)
	}
}

func TestCancelledReachableFromAnyNonTerminalState(t *testing.T) {
	for _, status := range AllOrderStatuses() {
		if status.IsTerminal() {
			assert.False(t, status.CanTransitionTo(OrderStatusCancelled))
			continue
		}
		assert.True(t, status.CanTransitionTo(OrderStatusCancelled), "%s should be cancellable", status)
	}
}

func TestTimestampColumn(t *testing.T) {
	col, ok := OrderStatusConfirmed.TimestampColumn()
	assert.True(t, ok)
	assert.Equal(t, "confirmed_at", col)

	col, ok = OrderStatusOutForDelivery.TimestampColumn()
	assert.True(t, ok)
	assert.Equal(t, "out_for_delivery_at", col)

	_, ok = OrderStatusPending.TimestampColumn()
	assert.False(t, ok, "pending is stamped by created_at, not a status column")
}
