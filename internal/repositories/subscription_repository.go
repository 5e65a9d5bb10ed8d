package repositories

import (
	"context"
	"errors"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// Create inserts the subscription and deactivates any prior active
// subscription for the same (customer, product) pair in the same
// transaction, keeping the one-active-per-pair invariant.
func (r *SubscriptionRepository) Create(ctx context.Context, s *models.Subscription) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE subscriptions SET is_active=false, updated_at=CURRENT_TIMESTAMP
         WHERE customer_id=$1 AND product_id=$2 AND is_active=true`,
		s.CustomerID, s.ProductID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO subscriptions(customer_id, product_id, quantity, price_per_unit, frequency, custom_days, start_date, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7, true)
         RETURNING id, is_active, created_at, updated_at`,
		s.CustomerID, s.ProductID, s.Quantity, s.PricePerUnit, s.Frequency, s.CustomDays, s.StartDate,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SubscriptionRepository) Get(ctx context.Context, id int) (*models.Subscription, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, customer_id, product_id, quantity, price_per_unit, frequency,
                COALESCE(custom_days, '{}') as custom_days, start_date, is_active, created_at, updated_at
         FROM subscriptions WHERE id=$1`, id)

	s, err := scanSubscription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("subscription %d", id)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubscriptionRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_id, product_id, quantity, price_per_unit, frequency,
                COALESCE(custom_days, '{}') as custom_days, start_date, is_active, created_at, updated_at
         FROM subscriptions WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

// ListActive returns all active subscriptions belonging to active customers.
// This is the materializer's input: paused customers receive no new deliveries.
func (r *SubscriptionRepository) ListActive(ctx context.Context) ([]*models.Subscription, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.customer_id, s.product_id, s.quantity, s.price_per_unit, s.frequency,
                COALESCE(s.custom_days, '{}') as custom_days, s.start_date, s.is_active, s.created_at, s.updated_at
         FROM subscriptions s
         JOIN customers c ON c.id = s.customer_id
         WHERE s.is_active=true AND c.is_active=true
         ORDER BY s.customer_id, s.product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *models.Subscription) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE subscriptions SET quantity=$1, price_per_unit=$2, frequency=$3, custom_days=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		s.Quantity, s.PricePerUnit, s.Frequency, s.CustomDays, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("subscription %d", s.ID)
	}
	return nil
}

func (r *SubscriptionRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE subscriptions SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("subscription %d", id)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM subscriptions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("subscription %d", id)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.PricePerUnit,
		&s.Frequency, &s.CustomDays, &s.StartDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSubscriptions(rows pgx.Rows) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
