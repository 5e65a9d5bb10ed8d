package handlers

import (
	"errors"
	"log"
	"net/http"

	"dairy-backend/internal/apperrors"
	"dairy-backend/pkg/utils"
)

// writeError maps the error taxonomy onto HTTP statuses: missing records
// are 404, bad input 400, double transitions 409, everything else 500.
// Internal errors are logged but never echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		utils.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		utils.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		utils.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	utils.JSON(w, status, data)
}
