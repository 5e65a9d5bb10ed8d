package services

import (
	"context"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
)

type CustomerService struct {
	Repo         *repositories.CustomerRepository
	DeliveryRepo *repositories.DeliveryRepository
	PaymentRepo  *repositories.PaymentRepository
}

func NewCustomerService(repo *repositories.CustomerRepository, deliveryRepo *repositories.DeliveryRepository, paymentRepo *repositories.PaymentRepository) *CustomerService {
	return &CustomerService{
		Repo:         repo,
		DeliveryRepo: deliveryRepo,
		PaymentRepo:  paymentRepo,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Mobile == "" {
		return nil, apperrors.InvalidInputf("name and mobile are required")
	}

	customer := &models.Customer{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Address: req.Address,
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Mobile == "" {
		return nil, apperrors.InvalidInputf("name and mobile are required")
	}

	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Mobile = req.Mobile
	customer.Lat = req.Lat
	customer.Lng = req.Lng
	customer.Address = req.Address
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

// DeleteCustomer removes the customer together with its subscriptions,
// deliveries and payments (cascaded in the database, so all-or-nothing).
// Any dues lookup for the id afterwards returns NotFound, never a silent 0.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDues(ctx, id)
	return nil
}

// DuesFor computes the customer's outstanding balance:
// delivered amounts minus all payments, signed. The Redis cache only
// shortcuts the recomputation; it never becomes the source of truth.
func (s *CustomerService) DuesFor(ctx context.Context, customerID int) (float64, error) {
	// Existence first, so a deleted customer surfaces NotFound rather than 0.
	if _, err := s.Repo.Get(ctx, customerID); err != nil {
		return 0, err
	}

	if dues, ok := cache.GetCachedDues(ctx, customerID); ok {
		return dues, nil
	}

	deliveries, err := s.DeliveryRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	payments, err := s.PaymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	dues := ComputeDues(deliveries, payments)

	cache.CacheDues(ctx, customerID, dues)
	// Refresh the denormalized column for list views; best effort.
	s.Repo.UpdateCachedDues(ctx, customerID, dues)

	return dues, nil
}
