package handlers

import (
	"net/http"

	"dairy-backend/internal/services"
	"dairy-backend/internal/timeutil"
)

type MaterializerHandler struct {
	Service *services.Materializer
}

func NewMaterializerHandler(s *services.Materializer) *MaterializerHandler {
	return &MaterializerHandler{Service: s}
}

// Run triggers materialization for a date on demand (admin only). Safe to
// call repeatedly; existing deliveries are never duplicated or reset.
func (h *MaterializerHandler) Run(w http.ResponseWriter, r *http.Request) {
	date := timeutil.StartOfDay(timeutil.Now())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		var err error
		date, err = timeutil.ParseDate(dateStr)
		if err != nil {
			http.Error(w, "Invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	created, err := h.Service.MaterializeForDate(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":    date.Format(timeutil.DateLayout),
		"created": created,
	})
}
