package handlers

import (
	"encoding/json"
	"net/http"

	"dairy-backend/internal/auth"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
	TOTP  *services.TOTPService
	JWT   *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Users: users, TOTP: totp, JWT: jwt}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		// Auth failures are always 401, whatever the underlying cause.
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify2FA is step two of login for TOTP-enabled users.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req models.Verify2FARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	claims, err := h.JWT.ValidateTempToken(req.TempToken)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	if err := h.TOTP.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		http.Error(w, "Invalid verification code", http.StatusUnauthorized)
		return
	}

	resp, err := h.Users.IssueToken(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
