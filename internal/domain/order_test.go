package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellea/storefront-client/internal/domain"
)

func TestOrderStatus_ForwardTransitions(t *testing.T) {
	tests := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderConfirmed, domain.OrderProcessing, true},
		{domain.OrderConfirmed, domain.OrderCancelled, true},
		{domain.OrderProcessing, domain.OrderShipped, true},
		{domain.OrderShipped, domain.OrderDelivered, true},
		{domain.OrderDelivered, domain.OrderReturned, true},

		// No going back, no skipping into the past.
		{domain.OrderConfirmed, domain.OrderPending, false},
		{domain.OrderShipped, domain.OrderProcessing, false},
		{domain.OrderDelivered, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderConfirmed, false},
		{domain.OrderReturned, domain.OrderPending, false},
		{domain.OrderProcessing, domain.OrderCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			order := &domain.Order{Status: tt.from}
			err := order.CanTransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			}
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.OrderDelivered.IsTerminal())
	assert.True(t, domain.OrderCancelled.IsTerminal())
	assert.True(t, domain.OrderReturned.IsTerminal())
	assert.False(t, domain.OrderPending.IsTerminal())
	assert.False(t, domain.OrderShipped.IsTerminal())
}

func TestOrder_CanCancel(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.OrderStatus
		paymentStatus domain.PaymentState
		want          bool
	}{
		{"pending order", domain.OrderPending, domain.PaymentStatePending, true},
		{"confirmed order", domain.OrderConfirmed, domain.PaymentStatePaid, true},
		{"processing order", domain.OrderProcessing, domain.PaymentStatePaid, false},
		{"shipped order", domain.OrderShipped, domain.PaymentStatePaid, false},
		{"delivered order", domain.OrderDelivered, domain.PaymentStatePaid, false},
		{"cancelled order", domain.OrderCancelled, domain.PaymentStatePending, false},
		{"returned order", domain.OrderReturned, domain.PaymentStateRefunded, false},
		{"refunded payment blocks cancel", domain.OrderPending, domain.PaymentStateRefunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{Status: tt.status, PaymentStatus: tt.paymentStatus}
			assert.Equal(t, tt.want, order.CanCancel())
		})
	}
}

func TestOrder_CanReturn(t *testing.T) {
	now := time.Now()
	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}

	tests := []struct {
		name        string
		status      domain.OrderStatus
		deliveredAt *time.Time
		want        bool
	}{
		{"delivered yesterday", domain.OrderDelivered, daysAgo(1), true},
		{"delivered 29 days ago", domain.OrderDelivered, daysAgo(29), true},
		{"delivered 31 days ago", domain.OrderDelivered, daysAgo(31), false},
		{"delivered without timestamp", domain.OrderDelivered, nil, false},
		{"shipped order", domain.OrderShipped, nil, false},
		{"cancelled order", domain.OrderCancelled, daysAgo(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{Status: tt.status, DeliveredAt: tt.deliveredAt}
			assert.Equal(t, tt.want, order.CanReturn(now))
		})
	}
}

func TestOrder_CanReorder(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderPending, domain.OrderConfirmed, domain.OrderProcessing,
		domain.OrderShipped, domain.OrderDelivered,
	} {
		order := &domain.Order{Status: status}
		assert.True(t, order.CanReorder(), "status %s", status)
	}

	for _, status := range []domain.OrderStatus{domain.OrderCancelled, domain.OrderReturned} {
		order := &domain.Order{Status: status}
		assert.False(t, order.CanReorder(), "status %s", status)
	}
}

func TestOrderStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending", domain.OrderPending.Label())
	assert.Equal(t, "Delivered", domain.OrderDelivered.Label())
	assert.Equal(t, "Returned", domain.OrderReturned.Label())
	assert.Equal(t, "Refunded", domain.PaymentStateRefunded.Label())
}
