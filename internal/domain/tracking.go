package domain

import (
	"fmt"
	"time"
)

// TrackingEvent is one completed milestone of an order's journey. Events
// for statuses not yet reached are absent, not present-but-incomplete, so
// the timeline only ever grows as the order advances.
type TrackingEvent struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	IsCompleted bool      `json:"isCompleted"`
}

type OrderTracking struct {
	Order    *Order          `json:"order"`
	Tracking []TrackingEvent `json:"tracking"`
}

// BuildTrackingEvents derives the milestone timeline from the order's
// status and timestamps. Deterministic: the same order always yields the
// same sequence, and advancing the status only appends.
func BuildTrackingEvents(order *Order) []TrackingEvent {
	events := []TrackingEvent{{
		ID:          "1",
		Status:      "Order Placed",
		Description: "Your order has been placed successfully",
		Timestamp:   order.CreatedAt,
		IsCompleted: true,
	}}

	if reached(order.Status, OrderConfirmed) {
		events = append(events, TrackingEvent{
			ID:          "2",
			Status:      "Order Confirmed",
			Description: "Your order has been confirmed and is being prepared",
			Timestamp:   order.CreatedAt.Add(time.Hour),
			IsCompleted: true,
		})
	}

	if reached(order.Status, OrderProcessing) {
		events = append(events, TrackingEvent{
			ID:          "3",
			Status:      "Processing",
			Description: "Your order is being processed and packed",
			Timestamp:   order.CreatedAt.Add(24 * time.Hour),
			IsCompleted: true,
		})
	}

	if reached(order.Status, OrderShipped) {
		desc := "Your order has been shipped"
		if order.TrackingNumber != "" {
			desc = fmt.Sprintf("%s (Tracking: %s)", desc, order.TrackingNumber)
		}
		events = append(events, TrackingEvent{
			ID:          "4",
			Status:      "Shipped",
			Description: desc,
			Timestamp:   order.CreatedAt.Add(48 * time.Hour),
			IsCompleted: true,
		})
	}

	// A returned order was delivered first; its timeline keeps the
	// delivery milestones.
	if (order.Status == OrderDelivered || order.Status == OrderReturned) && order.DeliveredAt != nil {
		events = append(events,
			TrackingEvent{
				ID:          "5",
				Status:      "Out for Delivery",
				Description: "Your order is out for delivery",
				Timestamp:   order.DeliveredAt.Add(-2 * time.Hour),
				IsCompleted: true,
			},
			TrackingEvent{
				ID:          "6",
				Status:      "Delivered",
				Description: "Your order has been delivered successfully",
				Timestamp:   *order.DeliveredAt,
				IsCompleted: true,
			},
		)
	}

	return events
}

// reached reports whether the order has passed through the milestone
// status on its way to the current one. A cancelled order keeps only
// the placement milestone; a returned order ranks as delivered.
func reached(current, milestone OrderStatus) bool {
	rank := func(s OrderStatus) int {
		switch s {
		case OrderPending:
			return 0
		case OrderConfirmed:
			return 1
		case OrderProcessing:
			return 2
		case OrderShipped:
			return 3
		case OrderDelivered, OrderReturned:
			return 4
		case OrderCancelled:
			return 0
		}
		return 0
	}
	return rank(current) >= rank(milestone)
}

const (
	standardDeliveryDays = 5
	expressDeliveryDays  = 3
)

// EstimateDelivery adds business days to the order date: five for free
// standard shipping, three for paid express. Saturdays and Sundays do not
// count toward the total.
func EstimateDelivery(order *Order) time.Time {
	days := standardDeliveryDays
	if order.Shipping > 0 {
		days = expressDeliveryDays
	}

	estimate := order.CreatedAt
	added := 0
	for added < days {
		estimate = estimate.AddDate(0, 0, 1)
		if wd := estimate.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return estimate
}
