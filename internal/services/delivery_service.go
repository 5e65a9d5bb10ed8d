package services

import (
	"context"
	"time"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/timeutil"
)

type DeliveryService struct {
	Repo         *repositories.DeliveryRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
}

func NewDeliveryService(repo *repositories.DeliveryRepository, customerRepo *repositories.CustomerRepository, productRepo *repositories.ProductRepository) *DeliveryService {
	return &DeliveryService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
	}
}

// CreateDelivery records an ad-hoc delivery (extra order outside any
// subscription). Price defaults to the product's current default when the
// request leaves it zero; the amount is derived and stored, never trusted
// from the client.
func (s *DeliveryService) CreateDelivery(ctx context.Context, req *models.CreateDeliveryRequest, userID int) (*models.Delivery, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.InvalidInputf("quantity must be positive")
	}
	if req.Price < 0 {
		return nil, apperrors.InvalidInputf("price cannot be negative")
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	product, err := s.ProductRepo.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	price := req.Price
	if price == 0 {
		price = product.DefaultPrice
	}

	date := timeutil.StartOfDay(timeutil.Now())
	if req.Date != "" {
		date, err = timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.InvalidInputf("invalid date %q, want YYYY-MM-DD", req.Date)
		}
	}

	d := &models.Delivery{
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		Price:           price,
		Amount:          DeliveryAmount(req.Quantity, price),
		Date:            date,
		Notes:           req.Notes,
		CreatedByUserID: userID,
	}

	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DeliveryService) GetDelivery(ctx context.Context, id int) (*models.Delivery, error) {
	return s.Repo.Get(ctx, id)
}

func (s *DeliveryService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Delivery, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

// RouteForDate builds the delivery route for one IST calendar day: all of
// the day's deliveries grouped by customer, with per-group totals and a
// derived status, optionally narrowed to a status tab.
func (s *DeliveryService) RouteForDate(ctx context.Context, date time.Time, filter string) ([]*models.RouteItem, error) {
	switch filter {
	case "", models.FilterAll, models.FilterPending, models.FilterDelivered, models.FilterMissed:
	default:
		return nil, apperrors.InvalidInputf("unknown filter %q", filter)
	}

	deliveries, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.ProductRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := BuildRouteItems(deliveries, customers, products)
	return FilterRouteItems(items, filter), nil
}

// MarkDelivered transitions a pending delivery to delivered. Terminal rows
// reject the transition with InvalidStateTransition; the repository's
// conditional UPDATE makes the race between two operators safe.
func (s *DeliveryService) MarkDelivered(ctx context.Context, id int, req *models.MarkDeliveredRequest) (*models.Delivery, error) {
	d, err := s.Repo.MarkDelivered(ctx, id, req.Notes, timeutil.Now())
	if err != nil {
		return nil, err
	}

	metrics.DeliveryTransitions.WithLabelValues(models.DeliveryDelivered).Inc()
	cache.InvalidateDues(ctx, d.CustomerID)
	return d, nil
}

// MarkMissed transitions a pending delivery to missed. Missed deliveries
// never contribute to the customer's dues.
func (s *DeliveryService) MarkMissed(ctx context.Context, id int, req *models.MarkMissedRequest) (*models.Delivery, error) {
	d, err := s.Repo.MarkMissed(ctx, id, req.Reason)
	if err != nil {
		return nil, err
	}

	metrics.DeliveryTransitions.WithLabelValues(models.DeliveryMissed).Inc()
	cache.InvalidateDues(ctx, d.CustomerID)
	return d, nil
}
