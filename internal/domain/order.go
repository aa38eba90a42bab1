package domain

import (
	"strings"
	"time"
)

// Delivery milestones in timeline order.
const (
	StatusPlaced         = "Placed"
	StatusProcessing     = "Processing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

// StatusTimeline is the fixed set of steps attached to every order at
// creation.
var StatusTimeline = []string{
	StatusPlaced,
	StatusProcessing,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

type StatusStep struct {
	Label     string    `json:"label"`
	At        time.Time `json:"at"`
	Completed bool      `json:"completed"`
}

// ShippingDetails is the validated address snapshot captured at checkout,
// reused for profile persistence and order creation.
type ShippingDetails struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	Apartment  string `json:"apartment,omitempty"`
	Road       string `json:"road,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type Order struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	CustomerID        *string         `json:"customerId,omitempty"`
	PlacedAt          time.Time       `json:"placedAt"`
	TotalAmount       int64           `json:"totalAmount"`
	ItemsCount        int             `json:"itemsCount"`
	Status            string          `json:"status"`
	PaymentMethod     string          `json:"paymentMethod"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	Note              string          `json:"note,omitempty"`
	Shipping          ShippingDetails `json:"shipping"`
	History           []StatusStep    `json:"history"`
}

// NewTimeline builds the initial status history: Placed and Processing are
// complete, the rest pending.
func NewTimeline(placedAt time.Time) []StatusStep {
	steps := make([]StatusStep, 0, len(StatusTimeline))
	for i, label := range StatusTimeline {
		step := StatusStep{Label: label}
		if i < 2 {
			step.At = placedAt
			step.Completed = true
		}
		steps = append(steps, step)
	}
	return steps
}

// Advance marks every step up to and including label complete at the given
// time and moves the current status forward. Completed steps are never
// reverted: advancing to an earlier step is a no-op.
func (o *Order) Advance(label string, at time.Time) bool {
	target := -1
	for i, l := range StatusTimeline {
		if strings.EqualFold(l, label) {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}
	advanced := false
	for i := range o.History {
		if i > target || o.History[i].Completed {
			continue
		}
		o.History[i].Completed = true
		o.History[i].At = at
		advanced = true
	}
	if advanced {
		o.Status = StatusTimeline[target]
	}
	return advanced
}
