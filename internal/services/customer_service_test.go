package services

import (
	"context"
	"errors"
	"testing"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuesForMissingCustomer(t *testing.T) {
	// A deleted or never-existing customer surfaces NotFound, never a
	// silent zero balance.
	db := &fakeDB{rows: []pgx.Row{noDBRow}}
	svc := NewCustomerService(&repositories.CustomerRepository{DB: db}, nil, nil)

	dues, err := svc.DuesFor(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Zero(t, dues)
}
