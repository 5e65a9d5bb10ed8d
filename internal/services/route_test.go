package services

import (
	"testing"

	"dairy-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRouteItemsGroupsByCustomer(t *testing.T) {
	customers := []*models.Customer{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Ravi"},
	}
	products := []*models.Product{
		{ID: 10, Name: "Milk"},
		{ID: 11, Name: "Curd"},
	}
	deliveries := []*models.Delivery{
		{ID: 100, CustomerID: 1, ProductID: 10, Amount: 30, Status: models.DeliveryPending},
		{ID: 101, CustomerID: 2, ProductID: 10, Amount: 60, Status: models.DeliveryDelivered},
		{ID: 102, CustomerID: 1, ProductID: 11, Amount: 25, Status: models.DeliveryDelivered},
	}

	items := BuildRouteItems(deliveries, customers, products)
	require.Len(t, items, 2)

	byCustomer := map[int]*models.RouteItem{}
	for _, item := range items {
		byCustomer[item.Customer.ID] = item
	}

	asha := byCustomer[1]
	require.NotNil(t, asha)
	assert.Len(t, asha.Deliveries, 2)
	assert.Equal(t, 55.0, asha.TotalAmount)
	assert.Equal(t, models.RoutePartial, asha.Status)
	assert.Equal(t, "Milk", asha.Deliveries[0].Product.Name)

	ravi := byCustomer[2]
	require.NotNil(t, ravi)
	assert.Len(t, ravi.Deliveries, 1)
	assert.Equal(t, 60.0, ravi.TotalAmount)
	assert.Equal(t, models.RouteCompleted, ravi.Status)
}

func TestBuildRouteItemsDropsUnresolvable(t *testing.T) {
	customers := []*models.Customer{{ID: 1}}
	products := []*models.Product{{ID: 10}}
	deliveries := []*models.Delivery{
		{ID: 100, CustomerID: 1, ProductID: 10, Amount: 30},
		{ID: 101, CustomerID: 99, ProductID: 10, Amount: 30}, // unknown customer
		{ID: 102, CustomerID: 1, ProductID: 99, Amount: 30},  // unknown product
	}

	items := BuildRouteItems(deliveries, customers, products)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Deliveries, 1)
	assert.Equal(t, 30.0, items[0].TotalAmount)
}

func TestBuildRouteItemsEmpty(t *testing.T) {
	assert.Empty(t, BuildRouteItems(nil, nil, nil))
}

func TestFilterRouteItems(t *testing.T) {
	pending := &models.RouteItem{
		Deliveries: []models.RouteDelivery{{Delivery: models.Delivery{Status: models.DeliveryPending}}},
		Status:     models.RoutePending,
	}
	done := &models.RouteItem{
		Deliveries: []models.RouteDelivery{{Delivery: models.Delivery{Status: models.DeliveryDelivered}}},
		Status:     models.RouteCompleted,
	}
	missed := &models.RouteItem{
		Deliveries: []models.RouteDelivery{{Delivery: models.Delivery{Status: models.DeliveryMissed}}},
		Status:     models.RoutePending,
	}
	items := []*models.RouteItem{pending, done, missed}

	assert.Len(t, FilterRouteItems(items, ""), 3)
	assert.Len(t, FilterRouteItems(items, models.FilterAll), 3)

	assert.Equal(t, []*models.RouteItem{pending}, FilterRouteItems(items, models.FilterPending))
	assert.Equal(t, []*models.RouteItem{done}, FilterRouteItems(items, models.FilterDelivered))
	assert.Equal(t, []*models.RouteItem{missed}, FilterRouteItems(items, models.FilterMissed))
}
