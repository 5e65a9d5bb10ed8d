package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

// stubDB hands out the prepared rows in QueryRow call order.
type stubDB struct {
	rows  []pgx.Row
	calls int
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	row := s.rows[s.calls]
	s.calls++
	return row
}

var noRow = stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}

// deliveryRow fills the columns of a delivery scan that matter here.
func deliveryRow(id int, status string) stubRow {
	return stubRow{scan: func(dest ...any) error {
		*(dest[0].(*int)) = id
		*(dest[8].(*string)) = status
		return nil
	}}
}

func TestMarkDeliveredRejectsTerminalDelivery(t *testing.T) {
	// Conditional UPDATE matches no pending row; the follow-up Get finds
	// the delivery already delivered.
	db := &stubDB{rows: []pgx.Row{noRow, deliveryRow(7, models.DeliveryDelivered)}}
	repo := &repositories.DeliveryRepository{DB: db}

	_, err := repo.MarkDelivered(context.Background(), 7, "", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
	assert.Contains(t, err.Error(), "already delivered")
}

func TestMarkMissedRejectsTerminalDelivery(t *testing.T) {
	db := &stubDB{rows: []pgx.Row{noRow, deliveryRow(3, models.DeliveryMissed)}}
	repo := &repositories.DeliveryRepository{DB: db}

	_, err := repo.MarkMissed(context.Background(), 3, "customer away")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
	assert.Contains(t, err.Error(), "already missed")
}

func TestCrossTransitionRejected(t *testing.T) {
	// A delivered row cannot be re-marked missed, and vice versa.
	db := &stubDB{rows: []pgx.Row{noRow, deliveryRow(7, models.DeliveryDelivered)}}
	repo := &repositories.DeliveryRepository{DB: db}

	_, err := repo.MarkMissed(context.Background(), 7, "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
}

func TestMarkDeliveredMissingDelivery(t *testing.T) {
	// Neither the UPDATE nor the follow-up Get finds the row: NotFound,
	// not a transition conflict.
	db := &stubDB{rows: []pgx.Row{noRow, noRow}}
	repo := &repositories.DeliveryRepository{DB: db}

	_, err := repo.MarkDelivered(context.Background(), 99, "", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
}

func TestGetMissingDelivery(t *testing.T) {
	db := &stubDB{rows: []pgx.Row{noRow}}
	repo := &repositories.DeliveryRepository{DB: db}

	_, err := repo.Get(context.Background(), 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
