package models

import "time"

// Delivery statuses. Initial state is pending; delivered, missed and
// cancelled are terminal. Cancelled is reserved and never set today.
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryMissed    = "missed"
	DeliveryCancelled = "cancelled"
)

type Delivery struct {
	ID              int        `json:"id"`
	CustomerID      int        `json:"customer_id"`
	ProductID       int        `json:"product_id"`
	SubscriptionID  *int       `json:"subscription_id,omitempty"` // set when materialized from a subscription
	Quantity        float64    `json:"quantity"`
	Price           float64    `json:"price"`
	Amount          float64    `json:"amount"`
	Date            time.Time  `json:"date"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"` // set only on transition to delivered
	CreatedByUserID int        `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsTerminal reports whether the delivery has reached a final status.
// Terminal deliveries reject further transitions.
func (d *Delivery) IsTerminal() bool {
	return d.Status == DeliveryDelivered || d.Status == DeliveryMissed || d.Status == DeliveryCancelled
}

// ValidDeliveryStatus reports whether s is one of the known statuses.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryPending, DeliveryDelivered, DeliveryMissed, DeliveryCancelled:
		return true
	}
	return false
}

// CreateDeliveryRequest represents the request body for an ad-hoc delivery
// (one not materialized from a subscription).
type CreateDeliveryRequest struct {
	CustomerID int     `json:"customer_id"`
	ProductID  int     `json:"product_id"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Date       string  `json:"date"` // YYYY-MM-DD, defaults to today
	Notes      string  `json:"notes"`
}

// MarkDeliveredRequest represents the request body for marking a delivery delivered
type MarkDeliveredRequest struct {
	Notes string `json:"notes"`
}

// MarkMissedRequest represents the request body for marking a delivery missed
type MarkMissedRequest struct {
	Reason string `json:"reason"`
}
