package repositories

import (
	"context"
	"errors"
	"time"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryRepository struct {
	DB querier
}

func NewDeliveryRepository(db *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

const deliveryColumns = `id, customer_id, product_id, subscription_id, quantity, price, amount,
       date, status, COALESCE(notes, '') as notes, delivered_at, created_by_user_id, created_at`

func (r *DeliveryRepository) Create(ctx context.Context, d *models.Delivery) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO deliveries(customer_id, product_id, subscription_id, quantity, price, amount, date, status, notes, created_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, 'pending', $8, $9)
         RETURNING id, status, created_at`,
		d.CustomerID, d.ProductID, d.SubscriptionID, d.Quantity, d.Price, d.Amount, d.Date, d.Notes, d.CreatedByUserID,
	).Scan(&d.ID, &d.Status, &d.CreatedAt)
}

// CreateIfAbsent inserts a materialized delivery unless one already exists
// for the same (customer, product, date). Returns true when a row was
// inserted. The WHERE NOT EXISTS plus the partial unique index in the schema
// make re-running materialization for a date a no-op.
func (r *DeliveryRepository) CreateIfAbsent(ctx context.Context, d *models.Delivery) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`INSERT INTO deliveries(customer_id, product_id, subscription_id, quantity, price, amount, date, status, created_by_user_id)
         SELECT $1, $2, $3, $4, $5, $6, $7, 'pending', $8
         WHERE NOT EXISTS (
             SELECT 1 FROM deliveries WHERE customer_id=$1 AND product_id=$2 AND date=$7
         )
         ON CONFLICT DO NOTHING`,
		d.CustomerID, d.ProductID, d.SubscriptionID, d.Quantity, d.Price, d.Amount, d.Date, d.CreatedByUserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *DeliveryRepository) Get(ctx context.Context, id int) (*models.Delivery, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id=$1`, id)

	d, err := scanDelivery(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("delivery %d", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByDate returns all deliveries dated on the given IST calendar day.
// The date column is a DATE, so matching is by calendar day, never by
// timestamp comparison.
func (r *DeliveryRepository) ListByDate(ctx context.Context, date time.Time) ([]*models.Delivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE date=$1::date ORDER BY customer_id, id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

func (r *DeliveryRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Delivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE customer_id=$1 ORDER BY date DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

// MarkDelivered flips a pending delivery to delivered and stamps
// delivered_at. The conditional UPDATE is the concurrency guard: if two
// operators race, exactly one wins and the loser sees the terminal row.
func (r *DeliveryRepository) MarkDelivered(ctx context.Context, id int, notes string, deliveredAt time.Time) (*models.Delivery, error) {
	return r.transition(ctx, id,
		`UPDATE deliveries SET status='delivered', notes=$2, delivered_at=$3
         WHERE id=$1 AND status='pending'
         RETURNING `+deliveryColumns,
		notes, deliveredAt)
}

// MarkMissed flips a pending delivery to missed, recording the reason.
// No timestamp is set; missed deliveries never bill the customer.
func (r *DeliveryRepository) MarkMissed(ctx context.Context, id int, reason string) (*models.Delivery, error) {
	return r.transition(ctx, id,
		`UPDATE deliveries SET status='missed', notes=$2
         WHERE id=$1 AND status='pending'
         RETURNING `+deliveryColumns,
		reason)
}

func (r *DeliveryRepository) transition(ctx context.Context, id int, query string, args ...interface{}) (*models.Delivery, error) {
	row := r.DB.QueryRow(ctx, query, append([]interface{}{id}, args...)...)
	d, err := scanDelivery(row)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No pending row matched: distinguish missing from already-terminal.
	existing, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.InvalidTransitionf("delivery %d is already %s", id, existing.Status)
}

func scanDelivery(row pgx.Row) (*models.Delivery, error) {
	var d models.Delivery
	err := row.Scan(&d.ID, &d.CustomerID, &d.ProductID, &d.SubscriptionID, &d.Quantity, &d.Price,
		&d.Amount, &d.Date, &d.Status, &d.Notes, &d.DeliveredAt, &d.CreatedByUserID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDeliveries(rows pgx.Rows) ([]*models.Delivery, error) {
	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
