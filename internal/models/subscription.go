package models

import (
	"time"

	"dairy-backend/internal/timeutil"
)

// Subscription frequencies
const (
	FrequencyDaily     = "daily"
	FrequencyAlternate = "alternate"
	FrequencyCustom    = "custom"
)

type Subscription struct {
	ID           int       `json:"id"`
	CustomerID   int       `json:"customer_id"`
	ProductID    int       `json:"product_id"`
	Quantity     float64   `json:"quantity"`       // in base units of the product (500 = half litre/kilo)
	PricePerUnit float64   `json:"price_per_unit"` // captured at subscription time, may differ from product default
	Frequency    string    `json:"frequency"`      // daily, alternate, custom
	CustomDays   []int     `json:"custom_days"`    // weekday indices 0-6 (Sunday-Saturday), only for custom
	StartDate    time.Time `json:"start_date"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// EstimatedMonthlyBill is a projection from the recurrence rule alone,
	// never reconciled against actual deliveries. Populated by the service.
	EstimatedMonthlyBill float64 `json:"estimated_monthly_bill"`
}

// IsDueOn reports whether this subscription produces a delivery on the given
// IST calendar day. The subscription's active flag is not consulted here;
// callers filter inactive subscriptions (and paused customers) first.
func (s *Subscription) IsDueOn(date time.Time) bool {
	days := timeutil.DaysBetween(s.StartDate, date)
	if days < 0 {
		return false
	}

	switch s.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyAlternate:
		return days%2 == 0
	case FrequencyCustom:
		weekday := int(timeutil.ToIST(date).Weekday())
		for _, d := range s.CustomDays {
			if d == weekday {
				return true
			}
		}
		return false
	}
	return false
}

// CreateSubscriptionRequest represents the request body for creating a subscription
type CreateSubscriptionRequest struct {
	CustomerID   int     `json:"customer_id"`
	ProductID    int     `json:"product_id"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Frequency    string  `json:"frequency"`
	CustomDays   []int   `json:"custom_days"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD, defaults to today
}

// UpdateSubscriptionRequest represents the request body for updating a subscription
type UpdateSubscriptionRequest struct {
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Frequency    string  `json:"frequency"`
	CustomDays   []int   `json:"custom_days"`
}
