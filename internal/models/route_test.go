package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func routeDeliveries(statuses ...string) []RouteDelivery {
	out := make([]RouteDelivery, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, RouteDelivery{Delivery: Delivery{Status: s}})
	}
	return out
}

func TestDeriveRouteStatus(t *testing.T) {
	assert.Equal(t, RoutePending, DeriveRouteStatus(nil))
	assert.Equal(t, RoutePending, DeriveRouteStatus(routeDeliveries(DeliveryPending, DeliveryPending)))
	assert.Equal(t, RouteCompleted, DeriveRouteStatus(routeDeliveries(DeliveryDelivered)))
	assert.Equal(t, RouteCompleted, DeriveRouteStatus(routeDeliveries(DeliveryDelivered, DeliveryDelivered)))
	assert.Equal(t, RoutePartial, DeriveRouteStatus(routeDeliveries(DeliveryDelivered, DeliveryPending)))

	// A missed delivery never completes a group.
	assert.Equal(t, RoutePending, DeriveRouteStatus(routeDeliveries(DeliveryMissed)))
	assert.Equal(t, RoutePartial, DeriveRouteStatus(routeDeliveries(DeliveryDelivered, DeliveryMissed)))
}

func TestRouteItemMatchesFilter(t *testing.T) {
	mixed := &RouteItem{
		Deliveries: routeDeliveries(DeliveryDelivered, DeliveryPending),
		Status:     RoutePartial,
	}
	done := &RouteItem{
		Deliveries: routeDeliveries(DeliveryDelivered),
		Status:     RouteCompleted,
	}
	missed := &RouteItem{
		Deliveries: routeDeliveries(DeliveryDelivered, DeliveryMissed),
		Status:     RoutePartial,
	}

	assert.True(t, mixed.MatchesFilter(FilterAll))
	assert.True(t, mixed.MatchesFilter(""))

	assert.True(t, mixed.MatchesFilter(FilterPending))
	assert.False(t, done.MatchesFilter(FilterPending))

	// The delivered tab means fully delivered, not "has one delivered".
	assert.False(t, mixed.MatchesFilter(FilterDelivered))
	assert.True(t, done.MatchesFilter(FilterDelivered))

	assert.True(t, missed.MatchesFilter(FilterMissed))
	assert.False(t, mixed.MatchesFilter(FilterMissed))

	assert.False(t, mixed.MatchesFilter("bogus"))
}
