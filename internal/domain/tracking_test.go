package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellea/storefront-client/internal/domain"
)

func orderInStatus(status domain.OrderStatus) *domain.Order {
	order := &domain.Order{
		ID:        "o1",
		Status:    status,
		CreatedAt: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
	}
	if status == domain.OrderDelivered {
		deliveredAt := order.CreatedAt.Add(4 * 24 * time.Hour)
		order.DeliveredAt = &deliveredAt
	}
	return order
}

func TestBuildTrackingEvents_GrowsMonotonically(t *testing.T) {
	ladder := []domain.OrderStatus{
		domain.OrderPending,
		domain.OrderConfirmed,
		domain.OrderProcessing,
		domain.OrderShipped,
		domain.OrderDelivered,
	}

	prevLen := 0
	prevIDs := []string{}
	for _, status := range ladder {
		events := domain.BuildTrackingEvents(orderInStatus(status))

		require.Greater(t, len(events), prevLen, "timeline must grow at status %s", status)

		// Earlier milestones stay in place: the new list extends the old.
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
			assert.True(t, e.IsCompleted, "every present milestone is completed")
		}
		assert.Equal(t, prevIDs, ids[:len(prevIDs)])

		prevLen = len(events)
		prevIDs = ids
	}
}

func TestBuildTrackingEvents_ChronologicalOrder(t *testing.T) {
	events := domain.BuildTrackingEvents(orderInStatus(domain.OrderDelivered))

	require.Len(t, events, 6)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp),
			"event %s precedes %s", events[i].Status, events[i-1].Status)
	}
	assert.Equal(t, "Delivered", events[len(events)-1].Status)
}

func TestBuildTrackingEvents_PendingHasOnlyPlacement(t *testing.T) {
	events := domain.BuildTrackingEvents(orderInStatus(domain.OrderPending))

	require.Len(t, events, 1)
	assert.Equal(t, "Order Placed", events[0].Status)
}

func TestBuildTrackingEvents_CancelledKeepsOnlyReachedMilestones(t *testing.T) {
	events := domain.BuildTrackingEvents(orderInStatus(domain.OrderCancelled))

	// Unreached milestones are absent, not present-but-incomplete.
	require.Len(t, events, 1)
}

func TestBuildTrackingEvents_ReturnedOrderKeepsDeliveryMilestones(t *testing.T) {
	order := orderInStatus(domain.OrderReturned)
	deliveredAt := order.CreatedAt.Add(4 * 24 * time.Hour)
	order.DeliveredAt = &deliveredAt

	events := domain.BuildTrackingEvents(order)

	require.Len(t, events, 6)
	assert.Equal(t, "Delivered", events[len(events)-1].Status)
}

func TestBuildTrackingEvents_IncludesTrackingNumber(t *testing.T) {
	order := orderInStatus(domain.OrderShipped)
	order.TrackingNumber = "TRK-99"

	events := domain.BuildTrackingEvents(order)

	require.Len(t, events, 4)
	assert.Contains(t, events[3].Description, "TRK-99")
}

func TestEstimateDelivery_SkipsWeekends(t *testing.T) {
	// Wednesday 2024-01-03.
	createdAt := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

	t.Run("standard shipping adds five business days", func(t *testing.T) {
		order := &domain.Order{CreatedAt: createdAt, Shipping: 0}
		estimate := domain.EstimateDelivery(order)
		// Thu 4, Fri 5, Mon 8, Tue 9, Wed 10.
		assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), estimate)
	})

	t.Run("express shipping adds three business days", func(t *testing.T) {
		order := &domain.Order{CreatedAt: createdAt, Shipping: 50}
		estimate := domain.EstimateDelivery(order)
		// Thu 4, Fri 5, Mon 8.
		assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), estimate)
	})

	t.Run("friday order lands past the weekend", func(t *testing.T) {
		// Friday 2024-01-05.
		order := &domain.Order{
			CreatedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			Shipping:  50,
		}
		estimate := domain.EstimateDelivery(order)
		// Mon 8, Tue 9, Wed 10.
		assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), estimate)
	})
}
