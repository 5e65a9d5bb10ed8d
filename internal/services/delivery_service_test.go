package services

import (
	"context"
	"errors"
	"testing"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeDB hands out the prepared rows in QueryRow call order.
type fakeDB struct {
	rows  []pgx.Row
	calls int
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	row := f.rows[f.calls]
	f.calls++
	return row
}

var noDBRow = fakeRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}

func deliveredRow(id, customerID int, amount float64) fakeRow {
	return fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*int)) = id
		*(dest[1].(*int)) = customerID
		*(dest[6].(*float64)) = amount
		*(dest[8].(*string)) = models.DeliveryDelivered
		return nil
	}}
}

func TestMarkDeliveredTwiceDoesNotDoubleCount(t *testing.T) {
	// First mark flips the pending row; the second hits a terminal row:
	// the conditional UPDATE matches nothing and the follow-up Get sees
	// status delivered.
	db := &fakeDB{rows: []pgx.Row{
		deliveredRow(7, 1, 60),
		noDBRow,
		deliveredRow(7, 1, 60),
	}}
	svc := NewDeliveryService(&repositories.DeliveryRepository{DB: db}, nil, nil)
	ctx := context.Background()

	d, err := svc.MarkDelivered(ctx, 7, &models.MarkDeliveredRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryDelivered, d.Status)

	ledger := []*models.Delivery{d}
	duesBefore := ComputeDues(ledger, nil)
	assert.Equal(t, 60.0, duesBefore)

	_, err = svc.MarkDelivered(ctx, 7, &models.MarkDeliveredRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))

	// The rejection leaves the ledger untouched: the amount bills once.
	assert.Equal(t, duesBefore, ComputeDues(ledger, nil))
}

func TestMarkMissedAfterDeliveredKeepsDues(t *testing.T) {
	// A delivered row cannot be flipped to missed afterwards, so the
	// billed amount can never be silently retracted.
	db := &fakeDB{rows: []pgx.Row{noDBRow, deliveredRow(7, 1, 60)}}
	svc := NewDeliveryService(&repositories.DeliveryRepository{DB: db}, nil, nil)

	_, err := svc.MarkMissed(context.Background(), 7, &models.MarkMissedRequest{Reason: "late"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))

	ledger := []*models.Delivery{{Status: models.DeliveryDelivered, Amount: 60}}
	assert.Equal(t, 60.0, ComputeDues(ledger, nil))
}

func TestMarkDeliveredMissingDeliveryIsNotFound(t *testing.T) {
	db := &fakeDB{rows: []pgx.Row{noDBRow, noDBRow}}
	svc := NewDeliveryService(&repositories.DeliveryRepository{DB: db}, nil, nil)

	_, err := svc.MarkDelivered(context.Background(), 99, &models.MarkDeliveredRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
