package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService lets customers clear their dues online. A captured
// Razorpay payment lands as a regular upi Payment row, so dues math never
// distinguishes online from over-the-counter money.
type RazorpayService struct {
	transactionRepo *repositories.OnlineTransactionRepository
	paymentRepo     *repositories.PaymentRepository
	customerRepo    *repositories.CustomerRepository
	deliveryRepo    *repositories.DeliveryRepository

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	transactionRepo *repositories.OnlineTransactionRepository,
	paymentRepo *repositories.PaymentRepository,
	customerRepo *repositories.CustomerRepository,
	deliveryRepo *repositories.DeliveryRepository,
) *RazorpayService {
	return &RazorpayService{
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
		deliveryRepo:    deliveryRepo,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
	}
}

// IsEnabled reports whether online payments are configured.
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *RazorpayService) client() *razorpay.Client {
	if !s.IsEnabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateOrder creates a Razorpay order for the customer. A zero amount
// defaults to the customer's current outstanding dues.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("razorpay client not configured")
	}

	customer, err := s.customerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == 0 {
		deliveries, err := s.deliveryRepo.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		payments, err := s.paymentRepo.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		amount = ComputeDues(deliveries, payments)
	}
	if amount <= 0 {
		return nil, apperrors.InvalidInputf("nothing to pay: dues are ₹%.2f", amount)
	}

	// Razorpay amounts are in paise.
	orderData := map[string]interface{}{
		"amount":   int(amount * 100),
		"currency": "INR",
		"receipt":  fmt.Sprintf("dues_%d_%d", customer.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"customer_id":     customer.ID,
			"customer_mobile": customer.Mobile,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID := order["id"].(string)

	txn := &models.OnlineTransaction{
		CustomerID:      customer.ID,
		RazorpayOrderID: orderID,
		Amount:          amount,
	}
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amount,
		Currency: "INR",
		KeyID:    s.keyID,
	}, nil
}

// VerifyPayment checks the checkout callback signature and settles the
// transaction. Safe to call more than once for the same order.
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if txn, err := s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID); err == nil {
			_ = s.transactionRepo.MarkFailed(ctx, txn.ID)
		}
		return nil, apperrors.InvalidInputf("invalid payment signature")
	}

	if err := s.settle(ctx, req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
}

// verifySignature checks the HMAC-SHA256 of "order_id|payment_id" against
// the key secret, in constant time.
func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature verifies the X-Razorpay-Signature header over the
// raw webhook body.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // not configured, skip verification
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles Razorpay webhook events. Redelivered events are
// no-ops: settle() only acts on transactions still in the created state.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	entity := paymentEntity(payload)
	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	switch event {
	case "payment.captured":
		return s.settle(ctx, orderID, paymentID)
	case "payment.failed":
		txn, err := s.transactionRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		return s.transactionRepo.MarkFailed(ctx, txn.ID)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

// settle records the upi Payment row for a captured order and marks the
// transaction paid. The repository's conditional update makes this
// idempotent across the checkout callback and the webhook racing each other.
func (s *RazorpayService) settle(ctx context.Context, orderID, razorpayPaymentID string) error {
	txn, err := s.transactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if txn.Status != models.TxnCreated {
		return nil // already settled or failed
	}

	p := &models.Payment{
		CustomerID: txn.CustomerID,
		Amount:     txn.Amount,
		Mode:       models.PaymentUPI,
		Notes:      fmt.Sprintf("Online payment via Razorpay | Order: %s | Payment: %s", orderID, razorpayPaymentID),
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	settled, err := s.transactionRepo.MarkPaid(ctx, txn.ID, razorpayPaymentID, p.ID)
	if err != nil {
		return err
	}
	if !settled {
		log.Printf("[Razorpay] Order %s settled concurrently", orderID)
		return nil
	}

	metrics.PaymentsRecorded.WithLabelValues(models.PaymentUPI).Inc()
	cache.InvalidateDues(ctx, txn.CustomerID)
	return nil
}

// paymentEntity digs the payment entity out of the webhook payload shape.
func paymentEntity(payload map[string]interface{}) map[string]interface{} {
	entity := payload
	if p, ok := payload["payment"].(map[string]interface{}); ok {
		entity = p
	}
	if e, ok := entity["entity"].(map[string]interface{}); ok {
		entity = e
	}
	return entity
}
