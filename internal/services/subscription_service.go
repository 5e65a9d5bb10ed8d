package services

import (
	"context"
	"time"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/timeutil"
)

type SubscriptionService struct {
	Repo         *repositories.SubscriptionRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
}

func NewSubscriptionService(repo *repositories.SubscriptionRepository, customerRepo *repositories.CustomerRepository, productRepo *repositories.ProductRepository) *SubscriptionService {
	return &SubscriptionService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
	}
}

func validateRecurrence(quantity, pricePerUnit float64, frequency string, customDays []int) error {
	if quantity <= 0 {
		return apperrors.InvalidInputf("quantity must be positive")
	}
	if pricePerUnit <= 0 {
		return apperrors.InvalidInputf("price per unit must be positive")
	}

	switch frequency {
	case models.FrequencyDaily, models.FrequencyAlternate:
		return nil
	case models.FrequencyCustom:
		if len(customDays) == 0 {
			return apperrors.InvalidInputf("custom frequency requires at least one weekday")
		}
		for _, d := range customDays {
			if d < 0 || d > 6 {
				return apperrors.InvalidInputf("custom day %d out of range 0-6", d)
			}
		}
		return nil
	default:
		return apperrors.InvalidInputf("unknown frequency %q", frequency)
	}
}

// CreateSubscription validates the recurrence rule, verifies both sides of
// the pair exist, and inserts it. Any prior active subscription for the
// same (customer, product) pair is deactivated atomically by the repository.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req *models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if err := validateRecurrence(req.Quantity, req.PricePerUnit, req.Frequency, req.CustomDays); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.ProductRepo.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}

	startDate := timeutil.StartOfDay(timeutil.Now())
	if req.StartDate != "" {
		var err error
		startDate, err = timeutil.ParseDate(req.StartDate)
		if err != nil {
			return nil, apperrors.InvalidInputf("invalid start_date %q, want YYYY-MM-DD", req.StartDate)
		}
	}

	customDays := req.CustomDays
	if req.Frequency != models.FrequencyCustom {
		customDays = nil
	}

	sub := &models.Subscription{
		CustomerID:   req.CustomerID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		Frequency:    req.Frequency,
		CustomDays:   customDays,
		StartDate:    startDate,
	}

	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	sub.EstimatedMonthlyBill = EstimateMonthlyBill(sub.Quantity, sub.PricePerUnit, sub.Frequency, sub.CustomDays)
	return sub, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.EstimatedMonthlyBill = EstimateMonthlyBill(sub.Quantity, sub.PricePerUnit, sub.Frequency, sub.CustomDays)
	return sub, nil
}

func (s *SubscriptionService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}

	subs, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		sub.EstimatedMonthlyBill = EstimateMonthlyBill(sub.Quantity, sub.PricePerUnit, sub.Frequency, sub.CustomDays)
	}
	return subs, nil
}

// UpdateSubscription rewrites the recurrence rule in place. Start date and
// the (customer, product) pair are immutable; create a new subscription to
// change those. Already-materialized deliveries keep their captured price.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, id int, req *models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	if err := validateRecurrence(req.Quantity, req.PricePerUnit, req.Frequency, req.CustomDays); err != nil {
		return nil, err
	}

	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Quantity = req.Quantity
	sub.PricePerUnit = req.PricePerUnit
	sub.Frequency = req.Frequency
	if req.Frequency == models.FrequencyCustom {
		sub.CustomDays = req.CustomDays
	} else {
		sub.CustomDays = nil
	}

	if err := s.Repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	sub.UpdatedAt = time.Now()
	sub.EstimatedMonthlyBill = EstimateMonthlyBill(sub.Quantity, sub.PricePerUnit, sub.Frequency, sub.CustomDays)
	return sub, nil
}

// PauseSubscription deactivates the subscription. Pending deliveries that
// were already materialized stay on the route.
func (s *SubscriptionService) PauseSubscription(ctx context.Context, id int) error {
	return s.Repo.SetActive(ctx, id, false)
}

func (s *SubscriptionService) ResumeSubscription(ctx context.Context, id int) error {
	return s.Repo.SetActive(ctx, id, true)
}

// DeleteSubscription removes the subscription row. Its materialized
// deliveries survive with subscription_id cleared (SET NULL in the schema)
// so billing history is untouched.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
