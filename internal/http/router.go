package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dairy-backend/internal/handlers"
	"dairy-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	totpHandler *handlers.TOTPHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	deliveryHandler *handlers.DeliveryHandler,
	paymentHandler *handlers.PaymentHandler,
	razorpayHandler *handlers.RazorpayHandler,
	materializerHandler *handlers.MaterializerHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")

	// Razorpay webhook is authenticated by its own signature, not a JWT
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// Protected API routes - Users (admin only, except /me)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("/me", userHandler.GetCurrentUser).Methods("GET")
	usersAPI.HandleFunc("/me/password", userHandler.ChangePassword).Methods("POST")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/toggle-active", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ToggleActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - 2FA for the logged-in user
	totpAPI := r.PathPrefix("/api/2fa").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/verify", totpHandler.VerifyAndEnable).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(customerHandler.DeleteCustomer)).ServeHTTP).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/dues", customerHandler.GetDues).Methods("GET")
	customersAPI.HandleFunc("/{id}/subscriptions", subscriptionHandler.ListByCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}/deliveries", deliveryHandler.ListByCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}/payments", paymentHandler.ListByCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}/statement.pdf", paymentHandler.GetStatementPDF).Methods("GET")

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Subscriptions
	subscriptionsAPI := r.PathPrefix("/api/subscriptions").Subrouter()
	subscriptionsAPI.Use(authMiddleware.Authenticate)
	subscriptionsAPI.HandleFunc("", subscriptionHandler.CreateSubscription).Methods("POST")
	subscriptionsAPI.HandleFunc("/{id}", subscriptionHandler.GetSubscription).Methods("GET")
	subscriptionsAPI.HandleFunc("/{id}", subscriptionHandler.UpdateSubscription).Methods("PUT")
	subscriptionsAPI.HandleFunc("/{id}", subscriptionHandler.DeleteSubscription).Methods("DELETE")
	subscriptionsAPI.HandleFunc("/{id}/pause", subscriptionHandler.PauseSubscription).Methods("POST")
	subscriptionsAPI.HandleFunc("/{id}/resume", subscriptionHandler.ResumeSubscription).Methods("POST")

	// Protected API routes - Deliveries and the daily route
	deliveriesAPI := r.PathPrefix("/api/deliveries").Subrouter()
	deliveriesAPI.Use(authMiddleware.Authenticate)
	deliveriesAPI.HandleFunc("", deliveryHandler.CreateDelivery).Methods("POST")
	deliveriesAPI.HandleFunc("/route", deliveryHandler.GetRoute).Methods("GET")
	deliveriesAPI.HandleFunc("/{id}", deliveryHandler.GetDelivery).Methods("GET")
	deliveriesAPI.HandleFunc("/{id}/delivered", deliveryHandler.MarkDelivered).Methods("POST")
	deliveriesAPI.HandleFunc("/{id}/missed", deliveryHandler.MarkMissed).Methods("POST")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("/export.csv", paymentHandler.GetPaymentsCSV).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id}/receipt.pdf", paymentHandler.GetReceiptPDF).Methods("GET")

	// Protected API routes - Online payments
	onlinePaymentsAPI := r.PathPrefix("/api/online-payments").Subrouter()
	onlinePaymentsAPI.Use(authMiddleware.Authenticate)
	onlinePaymentsAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	onlinePaymentsAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")

	// Protected API routes - Materializer (admin only)
	materializerAPI := r.PathPrefix("/api/materializer").Subrouter()
	materializerAPI.Use(authMiddleware.Authenticate)
	materializerAPI.HandleFunc("/run", authMiddleware.RequireAdmin(http.HandlerFunc(materializerHandler.Run)).ServeHTTP).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
