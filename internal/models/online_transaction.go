package models

import "time"

// Online transaction statuses (Razorpay order lifecycle)
const (
	TxnCreated  = "created"
	TxnPaid     = "paid"
	TxnFailed   = "failed"
)

// OnlineTransaction links a Razorpay order to a customer and, once captured,
// to the Payment row it produced.
type OnlineTransaction struct {
	ID                int       `json:"id"`
	CustomerID        int       `json:"customer_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"`
	PaymentID         *int      `json:"payment_id,omitempty"` // set once the upi Payment row is recorded
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateOrderRequest represents the request body for creating an online payment order
type CreateOrderRequest struct {
	CustomerID int     `json:"customer_id"`
	Amount     float64 `json:"amount"` // defaults to the customer's outstanding dues when zero
}

// CreateOrderResponse is returned to the frontend to launch Razorpay checkout
type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// VerifyPaymentRequest carries the checkout callback fields for signature verification
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
