package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
	"dairy-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type DeliveryHandler struct {
	Service *services.DeliveryService
}

func NewDeliveryHandler(s *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{Service: s}
}

func (h *DeliveryHandler) CreateDelivery(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	delivery, err := h.Service.CreateDelivery(r.Context(), &req, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, delivery)
}

func (h *DeliveryHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	delivery, err := h.Service.GetDelivery(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, delivery)
}

// GetRoute returns the day's deliveries grouped by customer. Date defaults
// to today (IST); ?filter narrows to a status tab.
func (h *DeliveryHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	date := timeutil.StartOfDay(timeutil.Now())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		var err error
		date, err = timeutil.ParseDate(dateStr)
		if err != nil {
			http.Error(w, "Invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	items, err := h.Service.RouteForDate(r.Context(), date, r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []*models.RouteItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *DeliveryHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.MarkDeliveredRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	delivery, err := h.Service.MarkDelivered(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, delivery)
}

func (h *DeliveryHandler) MarkMissed(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.MarkMissedRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	delivery, err := h.Service.MarkMissed(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, delivery)
}

func (h *DeliveryHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	deliveries, err := h.Service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deliveries)
}
