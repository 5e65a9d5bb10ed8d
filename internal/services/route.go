package services

import (
	"dairy-backend/internal/models"
)

// BuildRouteItems groups one day's deliveries by customer for the route
// screen. Deliveries whose customer or product no longer resolves are
// silently dropped (data inconsistency, not a user-facing error). Group
// order follows first appearance but callers must not rely on it.
func BuildRouteItems(deliveries []*models.Delivery, customers []*models.Customer, products []*models.Product) []*models.RouteItem {
	customerByID := make(map[int]*models.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}
	productByID := make(map[int]*models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	var items []*models.RouteItem
	itemByCustomer := make(map[int]*models.RouteItem)

	for _, d := range deliveries {
		customer, ok := customerByID[d.CustomerID]
		if !ok {
			continue
		}
		product, ok := productByID[d.ProductID]
		if !ok {
			continue
		}

		item, ok := itemByCustomer[d.CustomerID]
		if !ok {
			item = &models.RouteItem{Customer: customer}
			itemByCustomer[d.CustomerID] = item
			items = append(items, item)
		}

		item.Deliveries = append(item.Deliveries, models.RouteDelivery{
			Delivery: *d,
			Product:  product,
		})
		item.TotalAmount += d.Amount
	}

	for _, item := range items {
		item.Status = models.DeriveRouteStatus(item.Deliveries)
	}
	return items
}

// FilterRouteItems keeps the items belonging under the given status tab,
// using the same derivation the badges use.
func FilterRouteItems(items []*models.RouteItem, filter string) []*models.RouteItem {
	if filter == "" || filter == models.FilterAll {
		return items
	}
	var out []*models.RouteItem
	for _, item := range items {
		if item.MatchesFilter(filter) {
			out = append(out, item)
		}
	}
	return out
}
