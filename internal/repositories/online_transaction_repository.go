package repositories

import (
	"context"
	"errors"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, t *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(customer_id, razorpay_order_id, amount, status)
         VALUES($1, $2, $3, 'created')
         RETURNING id, status, created_at, updated_at`,
		t.CustomerID, t.RazorpayOrderID, t.Amount,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, customer_id, razorpay_order_id, COALESCE(razorpay_payment_id, ''), amount, status, payment_id, created_at, updated_at
         FROM online_transactions WHERE razorpay_order_id=$1`, orderID)

	var t models.OnlineTransaction
	err := row.Scan(&t.ID, &t.CustomerID, &t.RazorpayOrderID, &t.RazorpayPaymentID,
		&t.Amount, &t.Status, &t.PaymentID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("online transaction for order %s", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkPaid records the captured Razorpay payment id and the Payment row it
// produced. The status check makes webhook redelivery a no-op: the second
// delivery matches zero rows and the payment is not recorded twice.
func (r *OnlineTransactionRepository) MarkPaid(ctx context.Context, id int, razorpayPaymentID string, paymentRowID int) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
         SET status='paid', razorpay_payment_id=$2, payment_id=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$1 AND status='created'`,
		id, razorpayPaymentID, paymentRowID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status='failed', updated_at=CURRENT_TIMESTAMP
         WHERE id=$1 AND status='created'`, id)
	return err
}
