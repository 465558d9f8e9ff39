package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentNormalize(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		advance       int64
		wantRemaining int64
	}{
		{"typical advance", 80000, 20000, 60000},
		{"fully paid", 50000, 50000, 0},
		{"nothing paid", 32000, 0, 32000},
		{"overpaid floors at zero", 40000, 60000, 0},
		{"all zero", 0, 0, 0},
		{"negative advance", 10000, -5000, 15000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{Total: tt.total, Advance: tt.advance, Remaining: 999}
			p.Normalize()
			assert.Equal(t, tt.wantRemaining, p.Remaining)
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatusFlow {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("PENDING").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("new").Valid())
}

func TestCanSettleRemaining(t *testing.T) {
	order := Order{Status: StatusReady, Payment: Payment{Total: 40000, Advance: 10000, Remaining: 30000}}
	assert.True(t, order.CanSettleRemaining())

	// Settlement is offered at READY only.
	for _, s := range []OrderStatus{StatusNew, StatusWashing, StatusDelivered} {
		order.Status = s
		assert.False(t, order.CanSettleRemaining(), s)
	}

	// And only while something is still owed.
	order.Status = StatusReady
	order.Payment = Payment{Total: 40000, Advance: 40000, Remaining: 0}
	assert.False(t, order.CanSettleRemaining())
}
