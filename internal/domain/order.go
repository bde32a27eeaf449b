package domain

import (
	"time"

	"github.com/google/uuid"
)

// Frequency controls the cadence of a recurring template
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// DefaultBiweeklyInterval is the number of weeks between biweekly occurrences
// when the template does not specify one.
const DefaultBiweeklyInterval = 2

// OrderType tags an order with its sales channel, which drives billing-period
// and delivery-lag rules.
type OrderType string

const (
	OrderTypeB2B                  OrderType = "b2b"
	OrderTypeSeasonalSubscription OrderType = "seasonal_subscription"
	OrderTypeFarmersMarket        OrderType = "farmers_market_recurring"
	OrderTypeSubscriptionBox      OrderType = "subscription_box"
	OrderTypeWholesaleQuarterly   OrderType = "wholesale_quarterly"
)

// OrderStatus is the delivery lifecycle of a generated order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// LineItem is one product line on an order
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Product   string    `json:"product"`
	Variation string    `json:"variation,omitempty"`
	Grams     float64   `json:"grams"`
	Price     float64   `json:"price"`
}

// PackagingSelection records the packaging chosen for a product line
type PackagingSelection struct {
	Product string `json:"product"`
	Kind    string `json:"kind"`
	Count   int    `json:"count"`
}

// Order is both the recurring template and the materialized occurrence.
// A template has IsRecurring=true and no parent; a generated order always
// carries a non-nil ParentID and IsRecurring=false.
type Order struct {
	ID          uuid.UUID
	ParentID    *uuid.UUID
	IsRecurring bool
	Type        OrderType
	Status      OrderStatus
	Customer    string

	// Recurrence settings (templates only)
	Frequency          Frequency
	Interval           int
	StartDate          *time.Time
	EndDate            *time.Time
	LastGeneratedAt    *time.Time
	NextGenerationDate *time.Time
	Active             bool

	// Occurrence dates (generated orders only)
	HarvestDate  *time.Time
	DeliveryDate *time.Time

	// Billing period, assigned at generation time
	BillingPeriod      string
	BillingPeriodStart *time.Time
	BillingPeriodEnd   *time.Time

	Items     []LineItem
	Packaging []PackagingSelection

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate reports whether the order is a recurring template rather than a
// generated occurrence.
func (o *Order) IsTemplate() bool {
	return o.IsRecurring && o.ParentID == nil
}

// EffectiveInterval returns the biweekly week interval, defaulting when unset.
func (o *Order) EffectiveInterval() int {
	if o.Interval >= 1 {
		return o.Interval
	}
	return DefaultBiweeklyInterval
}
