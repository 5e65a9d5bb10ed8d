package models

// Route item statuses, derived from the member deliveries.
const (
	RoutePending   = "pending"
	RoutePartial   = "partial"
	RouteCompleted = "completed"
)

// Status filter tabs for the deliveries screen.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterDelivered = "delivered"
	FilterMissed    = "missed"
)

// RouteDelivery is a delivery with its product resolved, as the delivery
// person sees it on the route screen.
type RouteDelivery struct {
	Delivery
	Product *Product `json:"product"`
}

// RouteItem groups one customer's deliveries for one date.
type RouteItem struct {
	Customer    *Customer       `json:"customer"`
	Deliveries  []RouteDelivery `json:"deliveries"`
	TotalAmount float64         `json:"total_amount"`
	Status      string          `json:"status"`
}

// DeriveRouteStatus computes a route item's status strictly from its member
// deliveries: all delivered -> completed, a mix of delivered and others ->
// partial, otherwise pending. Missed deliveries count as "not delivered";
// they never complete a group on their own.
//
// This is the single derivation used for both the per-item badge and the
// filter tab counts, so the two can never disagree.
func DeriveRouteStatus(deliveries []RouteDelivery) string {
	if len(deliveries) == 0 {
		return RoutePending
	}

	delivered := 0
	for _, d := range deliveries {
		if d.Status == DeliveryDelivered {
			delivered++
		}
	}

	switch delivered {
	case len(deliveries):
		return RouteCompleted
	case 0:
		return RoutePending
	default:
		return RoutePartial
	}
}

// MatchesFilter reports whether a route item belongs under the given status
// tab: pending -> any pending delivery, delivered -> every delivery
// delivered, missed -> any missed delivery.
func (ri *RouteItem) MatchesFilter(filter string) bool {
	switch filter {
	case FilterAll, "":
		return true
	case FilterPending:
		for _, d := range ri.Deliveries {
			if d.Status == DeliveryPending {
				return true
			}
		}
		return false
	case FilterDelivered:
		return ri.Status == RouteCompleted
	case FilterMissed:
		for _, d := range ri.Deliveries {
			if d.Status == DeliveryMissed {
				return true
			}
		}
		return false
	}
	return false
}
