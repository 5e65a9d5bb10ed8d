package services

import (
	"dairy-backend/internal/models"
)

// ReferenceUnitSize is the quantity entry baseline: quantities are recorded
// in the product's base unit (ml, g, pieces) relative to a half-litre /
// half-kilo increment of 500. A quantity of 500 is one price unit.
const ReferenceUnitSize = 500

// Deliveries per month by frequency. Deliberately a flat approximation for
// the setup-time estimate, not derived from an actual calendar.
const (
	deliveriesPerMonthDaily     = 30
	deliveriesPerMonthAlternate = 15
	weeksPerMonth               = 4
)

// DeliveryAmount derives the billable amount of one delivery from its
// quantity and captured per-unit price.
func DeliveryAmount(quantity, pricePerUnit float64) float64 {
	return quantity / ReferenceUnitSize * pricePerUnit
}

// EstimateMonthlyBill projects a subscription's rough monthly cost from its
// recurrence rule alone. Pure: same inputs always produce the same estimate,
// and it is never reconciled against actual delivery history.
func EstimateMonthlyBill(quantity, pricePerUnit float64, frequency string, customDays []int) float64 {
	var perMonth float64
	switch frequency {
	case models.FrequencyDaily:
		perMonth = deliveriesPerMonthDaily
	case models.FrequencyAlternate:
		perMonth = deliveriesPerMonthAlternate
	case models.FrequencyCustom:
		perMonth = float64(len(customDays) * weeksPerMonth)
	}
	return quantity / ReferenceUnitSize * pricePerUnit * perMonth
}

// ComputeDues nets a customer's delivered amounts against all payments.
// Positive = customer owes, negative = paid in advance. Only delivered
// rows count; pending and missed deliveries contribute nothing no matter
// what their amount field says. Payments subtract in full regardless of any
// delivery linkage they carry.
func ComputeDues(deliveries []*models.Delivery, payments []*models.Payment) float64 {
	var delivered float64
	for _, d := range deliveries {
		if d.Status == models.DeliveryDelivered {
			delivered += d.Amount
		}
	}

	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}

	return delivered - paid
}
