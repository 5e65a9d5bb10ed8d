package models

import "time"

// Payment modes
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

type Payment struct {
	ID              int       `json:"id"`
	ReceiptNumber   string    `json:"receipt_number"`
	CustomerID      int       `json:"customer_id"`
	Amount          float64   `json:"amount"`
	Mode            string    `json:"mode"` // cash, upi, card
	Date            time.Time `json:"date"`
	Notes           string    `json:"notes,omitempty"`
	DeliveryIDs     []int     `json:"delivery_ids,omitempty"` // informational only; dues are netted in aggregate
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedByName   string    `json:"created_by_name,omitempty"` // joined from users table
	CreatedAt       time.Time `json:"created_at"`
}

// ValidPaymentMode reports whether m is one of the accepted payment modes.
func ValidPaymentMode(m string) bool {
	return m == PaymentCash || m == PaymentUPI || m == PaymentCard
}

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	CustomerID  int     `json:"customer_id"`
	Amount      float64 `json:"amount"`
	Mode        string  `json:"mode"`
	Notes       string  `json:"notes"`
	DeliveryIDs []int   `json:"delivery_ids"`
}

// DuesResponse is the payload for the customer dues endpoint. Dues are
// signed: positive = customer owes, negative = paid in advance.
type DuesResponse struct {
	CustomerID int     `json:"customer_id"`
	Dues       float64 `json:"dues"`
}
