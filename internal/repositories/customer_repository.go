package repositories

import (
	"context"
	"errors"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB querier
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, mobile, lat, lng, address, is_active)
         VALUES($1, $2, $3, $4, $5, true)
         RETURNING id, is_active, created_at, updated_at`,
		c.Name, c.Mobile, c.Lat, c.Lng, c.Address,
	).Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, mobile, lat, lng, COALESCE(address, '') as address, is_active, total_dues, created_at, updated_at
         FROM customers WHERE id=$1`, id)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Mobile, &customer.Lat, &customer.Lng,
		&customer.Address, &customer.IsActive, &customer.TotalDues, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("customer %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, mobile, lat, lng, COALESCE(address, '') as address, is_active, total_dues, created_at, updated_at
         FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Mobile, &customer.Lat, &customer.Lng,
			&customer.Address, &customer.IsActive, &customer.TotalDues, &customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, mobile=$2, lat=$3, lng=$4, address=$5, is_active=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		c.Name, c.Mobile, c.Lat, c.Lng, c.Address, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("customer %d", c.ID)
	}
	return nil
}

// UpdateCachedDues refreshes the denormalized total_dues column shown on
// list views. Display only; never read back for billing.
func (r *CustomerRepository) UpdateCachedDues(ctx context.Context, id int, dues float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET total_dues=$1 WHERE id=$2`, dues, id)
	return err
}

// Delete removes the customer. Subscriptions, deliveries and payments go
// with it via ON DELETE CASCADE, so the removal is a single atomic statement.
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("customer %d", id)
	}
	return nil
}
