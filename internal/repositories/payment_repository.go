package repositories

import (
	"context"
	"errors"
	"fmt"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// GenerateReceiptNumber pulls the next receipt number from a database
// sequence. O(1), safe under concurrent payment recording.
func (r *PaymentRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}
	return fmt.Sprintf("RCP-%06d", nextNum), nil
}

// CheckDuplicatePayment reports whether an identical payment for the same
// customer landed within the last 10 seconds (double-tap protection).
func (r *PaymentRepository) CheckDuplicatePayment(ctx context.Context, customerID int, amount float64) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM payments
		WHERE customer_id = $1
		AND amount = $2
		AND created_at > NOW() - INTERVAL '10 seconds'
	`, customerID, amount).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	isDuplicate, err := r.CheckDuplicatePayment(ctx, p.CustomerID, p.Amount)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if isDuplicate {
		return apperrors.InvalidInputf("duplicate payment: ₹%.2f for this customer was already recorded within the last 10 seconds", p.Amount)
	}

	receiptNumber, err := r.GenerateReceiptNumber(ctx)
	if err != nil {
		return err
	}

	err = r.DB.QueryRow(ctx,
		`INSERT INTO payments(receipt_number, customer_id, amount, mode, notes, delivery_ids, created_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, date, created_at`,
		receiptNumber, p.CustomerID, p.Amount, p.Mode, p.Notes, p.DeliveryIDs, p.CreatedByUserID,
	).Scan(&p.ID, &p.Date, &p.CreatedAt)
	if err != nil {
		return err
	}

	p.ReceiptNumber = receiptNumber
	return nil
}

const paymentColumns = `p.id, p.receipt_number, p.customer_id, p.amount, p.mode, p.date,
       COALESCE(p.notes, '') as notes, COALESCE(p.delivery_ids, '{}') as delivery_ids,
       COALESCE(p.created_by_user_id, 0), COALESCE(u.name, '') as created_by_name, p.created_at`

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+`
         FROM payments p LEFT JOIN users u ON p.created_by_user_id = u.id
         WHERE p.id=$1`, id)

	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("payment %d", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+`
         FROM payments p LEFT JOIN users u ON p.created_by_user_id = u.id
         WHERE p.customer_id=$1 ORDER BY p.date DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	// JOIN with users to get the operator name - avoids N+1 queries
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+`
         FROM payments p LEFT JOIN users u ON p.created_by_user_id = u.id
         ORDER BY p.date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.ReceiptNumber, &p.CustomerID, &p.Amount, &p.Mode, &p.Date,
		&p.Notes, &p.DeliveryIDs, &p.CreatedByUserID, &p.CreatedByName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
