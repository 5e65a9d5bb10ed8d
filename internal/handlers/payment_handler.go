package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/services"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service *services.PaymentService
	Reports *services.ReportService
}

func NewPaymentHandler(s *services.PaymentService, reports *services.ReportService) *PaymentHandler {
	return &PaymentHandler{Service: s, Reports: reports}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	payment, err := h.Service.RecordPayment(r.Context(), &req, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	payment, err := h.Service.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.ListPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	payments, err := h.Service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// GetReceiptPDF streams the printable receipt for a payment.
func (h *PaymentHandler) GetReceiptPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdf, err := h.Reports.GenerateReceiptPDF(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", id))
	w.Write(pdf)
}

// GetStatementPDF streams a customer's full statement.
func (h *PaymentHandler) GetStatementPDF(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdf, err := h.Reports.GenerateStatementPDF(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=statement_%d.pdf", customerID))
	w.Write(pdf)
}

// GetPaymentsCSV exports all payments for bookkeeping.
func (h *PaymentHandler) GetPaymentsCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Reports.GeneratePaymentsCSV(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=payments.csv")
	w.Write(data)
}
