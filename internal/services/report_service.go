package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// StatementData holds all data for a customer statement
type StatementData struct {
	Customer   *models.Customer
	Deliveries []*models.Delivery
	Payments   []*models.Payment
	Products   map[int]*models.Product
	Delivered  float64
	Paid       float64
	Dues       float64
}

// ReportService generates payment receipts and customer statements.
type ReportService struct {
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	DeliveryRepo *repositories.DeliveryRepository
	PaymentRepo  *repositories.PaymentRepository
}

func NewReportService(
	customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository,
	deliveryRepo *repositories.DeliveryRepository,
	paymentRepo *repositories.PaymentRepository,
) *ReportService {
	return &ReportService{
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		DeliveryRepo: deliveryRepo,
		PaymentRepo:  paymentRepo,
	}
}

// GenerateReceiptPDF renders a printable receipt for one payment.
func (s *ReportService) GenerateReceiptPDF(ctx context.Context, paymentID int) ([]byte, error) {
	payment, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	customer, err := s.CustomerRepo.Get(ctx, payment.CustomerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(128, 10, "Dairy Delivery - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(128, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(128, 8, fmt.Sprintf("Receipt %s", payment.ReceiptNumber), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(64, 7, fmt.Sprintf("Name: %s", customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("Mobile: %s", customer.Mobile), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("Date: %s", timeutil.ToIST(payment.Date).Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("Mode: %s", payment.Mode), "RB", 1, "L", false, 0, "")
	if payment.CreatedByName != "" {
		pdf.CellFormat(128, 7, fmt.Sprintf("Received by: %s", payment.CreatedByName), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFillColor(200, 255, 200)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(128, 10, fmt.Sprintf("Amount Received: Rs. %.2f", payment.Amount), "1", 1, "C", true, 0, "")

	if payment.Notes != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(128, 6, fmt.Sprintf("Notes: %s", payment.Notes), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetStatementData fetches everything needed for a customer statement.
func (s *ReportService) GetStatementData(ctx context.Context, customerID int) (*StatementData, error) {
	customer, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.DeliveryRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	products, err := s.ProductRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	productByID := make(map[int]*models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	var delivered, paid float64
	for _, d := range deliveries {
		if d.Status == models.DeliveryDelivered {
			delivered += d.Amount
		}
	}
	for _, p := range payments {
		paid += p.Amount
	}

	return &StatementData{
		Customer:   customer,
		Deliveries: deliveries,
		Payments:   payments,
		Products:   productByID,
		Delivered:  delivered,
		Paid:       paid,
		Dues:       delivered - paid,
	}, nil
}

// GenerateStatementPDF renders the customer's full delivery and payment
// history with the running balance.
func (s *ReportService) GenerateStatementPDF(ctx context.Context, customerID int) ([]byte, error) {
	data, err := s.GetStatementData(ctx, customerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Dairy Delivery - Customer Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Mobile: %s", data.Customer.Mobile), "RB", 1, "L", false, 0, "")
	if data.Customer.Address != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Address: %s", data.Customer.Address), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Deliveries", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, d := range data.Deliveries {
		productName := "-"
		unit := ""
		if p, ok := data.Products[d.ProductID]; ok {
			productName = p.Name
			unit = p.Unit
		}
		if len(productName) > 25 {
			productName = productName[:22] + "..."
		}
		pdf.CellFormat(30, 6, timeutil.ToIST(d.Date).Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, productName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.0f %s", d.Quantity, unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", d.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, d.Status, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	if len(data.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Payments", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(40, 7, "Receipt #", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Mode", "1", 0, "C", true, 0, "")
		pdf.CellFormat(80, 7, "Amount", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range data.Payments {
			pdf.CellFormat(40, 6, p.ReceiptNumber, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, timeutil.ToIST(p.Date).Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, p.Mode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(80, 6, fmt.Sprintf("Rs. %.2f", p.Amount), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 8, fmt.Sprintf("Total Delivered: Rs. %.2f", data.Delivered), "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, fmt.Sprintf("Total Paid: Rs. %.2f", data.Paid), "1", 1, "C", false, 0, "")

	if data.Dues > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Outstanding Dues: Rs. %.2f", data.Dues)
	if data.Dues < 0 {
		balanceText = fmt.Sprintf("Advance Balance: Rs. %.2f", -data.Dues)
	} else if data.Dues == 0 {
		balanceText = "FULLY PAID"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePaymentsCSV exports all payments for bookkeeping.
func (s *ReportService) GeneratePaymentsCSV(ctx context.Context) ([]byte, error) {
	payments, err := s.PaymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"#", "Receipt", "Customer ID", "Amount", "Mode", "Date", "Recorded By", "Notes"})

	for i, p := range payments {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			p.ReceiptNumber,
			fmt.Sprintf("%d", p.CustomerID),
			fmt.Sprintf("%.2f", p.Amount),
			p.Mode,
			timeutil.ToIST(p.Date).Format("02-Jan-2006"),
			p.CreatedByName,
			p.Notes,
		})
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
