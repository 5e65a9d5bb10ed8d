package repositories

import (
	"context"
	"errors"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, unit, default_price)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Unit, p.DefaultPrice,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, unit, default_price, created_at, updated_at
         FROM products WHERE id=$1`, id)

	var product models.Product
	err := row.Scan(&product.ID, &product.Name, &product.Unit, &product.DefaultPrice,
		&product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("product %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, unit, default_price, created_at, updated_at
         FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(&product.ID, &product.Name, &product.Unit, &product.DefaultPrice,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, unit=$2, default_price=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		p.Name, p.Unit, p.DefaultPrice, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("product %d", p.ID)
	}
	return nil
}

// Delete removes a catalog entry. Historical deliveries keep their captured
// price and quantity; their product_id is left dangling on purpose and the
// scheduler drops such rows from route views.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("product %d", id)
	}
	return nil
}
