package services

import (
	"testing"

	"dairy-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryAmount(t *testing.T) {
	assert.Equal(t, 30.0, DeliveryAmount(500, 30))  // one price unit
	assert.Equal(t, 60.0, DeliveryAmount(1000, 30)) // a full litre at 30/half-litre
	assert.Equal(t, 15.0, DeliveryAmount(250, 30))
	assert.Equal(t, 0.0, DeliveryAmount(0, 30))
}

func TestEstimateMonthlyBill(t *testing.T) {
	// 1000 units at 30 per 500 -> 60 per delivery.
	assert.Equal(t, 1800.0, EstimateMonthlyBill(1000, 30, models.FrequencyDaily, nil))
	assert.Equal(t, 900.0, EstimateMonthlyBill(1000, 30, models.FrequencyAlternate, nil))

	// Custom: len(days) deliveries a week, four weeks a month.
	assert.Equal(t, 720.0, EstimateMonthlyBill(1000, 30, models.FrequencyCustom, []int{1, 4, 6}))
	assert.Equal(t, 0.0, EstimateMonthlyBill(1000, 30, models.FrequencyCustom, nil))

	assert.Equal(t, 0.0, EstimateMonthlyBill(1000, 30, "weekly", nil))
}

func TestEstimateMonthlyBillIsPure(t *testing.T) {
	first := EstimateMonthlyBill(1500, 25, models.FrequencyAlternate, nil)
	second := EstimateMonthlyBill(1500, 25, models.FrequencyAlternate, nil)
	assert.Equal(t, first, second)
}

func TestComputeDuesOnlyDeliveredCounts(t *testing.T) {
	deliveries := []*models.Delivery{
		{Status: models.DeliveryDelivered, Amount: 60},
		{Status: models.DeliveryDelivered, Amount: 40},
		{Status: models.DeliveryPending, Amount: 999},
		{Status: models.DeliveryMissed, Amount: 999},
	}

	assert.Equal(t, 100.0, ComputeDues(deliveries, nil))
}

func TestComputeDuesNetsPayments(t *testing.T) {
	deliveries := []*models.Delivery{
		{Status: models.DeliveryDelivered, Amount: 1000},
		{Status: models.DeliveryDelivered, Amount: 1000},
	}
	payments := []*models.Payment{
		{Amount: 200},
	}

	assert.Equal(t, 1800.0, ComputeDues(deliveries, payments))
}

func TestComputeDuesAdvanceGoesNegative(t *testing.T) {
	deliveries := []*models.Delivery{
		{Status: models.DeliveryDelivered, Amount: 300},
	}
	payments := []*models.Payment{
		{Amount: 500},
	}

	assert.Equal(t, -200.0, ComputeDues(deliveries, payments))
}

func TestComputeDuesIgnoresDeliveryLinkage(t *testing.T) {
	// Payments subtract in full even when linked to specific deliveries.
	deliveries := []*models.Delivery{
		{ID: 1, Status: models.DeliveryDelivered, Amount: 1200},
		{ID: 2, Status: models.DeliveryDelivered, Amount: 1200},
	}
	payments := []*models.Payment{
		{Amount: 480, DeliveryIDs: []int{1}},
	}

	assert.Equal(t, 1920.0, ComputeDues(deliveries, payments))
}

func TestComputeDuesEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDues(nil, nil))
}
