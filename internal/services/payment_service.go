package services

import (
	"context"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
)

type PaymentService struct {
	Repo         *repositories.PaymentRepository
	CustomerRepo *repositories.CustomerRepository
	DeliveryRepo *repositories.DeliveryRepository
}

func NewPaymentService(repo *repositories.PaymentRepository, customerRepo *repositories.CustomerRepository, deliveryRepo *repositories.DeliveryRepository) *PaymentService {
	return &PaymentService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		DeliveryRepo: deliveryRepo,
	}
}

// RecordPayment validates and stores a payment, then invalidates the
// customer's cached dues so the next lookup recomputes. delivery_ids are
// informational only; the amount is applied against the aggregate balance
// and overpayment is allowed (carried as negative dues).
func (s *PaymentService) RecordPayment(ctx context.Context, req *models.CreatePaymentRequest, userID int) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.InvalidInputf("amount must be positive")
	}
	if !models.ValidPaymentMode(req.Mode) {
		return nil, apperrors.InvalidInputf("unknown payment mode %q", req.Mode)
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	for _, id := range req.DeliveryIDs {
		d, err := s.DeliveryRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if d.CustomerID != req.CustomerID {
			return nil, apperrors.InvalidInputf("delivery %d belongs to another customer", id)
		}
	}

	p := &models.Payment{
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		Mode:            req.Mode,
		Notes:           req.Notes,
		DeliveryIDs:     req.DeliveryIDs,
		CreatedByUserID: userID,
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(p.Mode).Inc()
	cache.InvalidateDues(ctx, p.CustomerID)
	return p, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PaymentService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Payment, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.Repo.List(ctx)
}
