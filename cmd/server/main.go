package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"dairy-backend/internal/auth"
	"dairy-backend/internal/backup"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/config"
	"dairy-backend/internal/database"
	"dairy-backend/internal/db"
	"dairy-backend/internal/handlers"
	"dairy-backend/internal/health"
	h "dairy-backend/internal/http"
	"dairy-backend/internal/middleware"
	"dairy-backend/internal/models"
	"dairy-backend/internal/monitoring"
	"dairy-backend/internal/repositories"
	"dairy-backend/internal/services"
)

// bootstrapAdmin creates the first admin account when the users table is
// empty, so a fresh install is usable without psql access.
func bootstrapAdmin(ctx context.Context, userService *services.UserService, userRepo *repositories.UserRepository) {
	users, err := userRepo.List(ctx)
	if err != nil || len(users) > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[Bootstrap] No users exist; set ADMIN_EMAIL and ADMIN_PASSWORD to create the first admin")
		return
	}

	_, err = userService.CreateUser(ctx, &models.CreateUserRequest{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     services.RoleAdmin,
	})
	if err != nil {
		log.Printf("[Bootstrap] Failed to create admin user: %v", err)
		return
	}
	log.Printf("[Bootstrap] Created admin user %s", email)
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it dues and auth caching degrade to misses.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	healthChecker := health.NewHealthChecker(pool)

	// Monitoring dashboard on its own port
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)
	deliveryRepo := repositories.NewDeliveryRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	onlineTransactionRepo := repositories.NewOnlineTransactionRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo)
	customerService := services.NewCustomerService(customerRepo, deliveryRepo, paymentRepo)
	productService := services.NewProductService(productRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, customerRepo, productRepo)
	deliveryService := services.NewDeliveryService(deliveryRepo, customerRepo, productRepo)
	paymentService := services.NewPaymentService(paymentRepo, customerRepo, deliveryRepo)
	reportService := services.NewReportService(customerRepo, productRepo, deliveryRepo, paymentRepo)
	materializer := services.NewMaterializer(subscriptionRepo, deliveryRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		onlineTransactionRepo,
		paymentRepo,
		customerRepo,
		deliveryRepo,
	)

	bootstrapAdmin(context.Background(), userService, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, reportService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	materializerHandler := handlers.NewMaterializerHandler(materializer)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		totpHandler,
		customerHandler,
		productHandler,
		subscriptionHandler,
		deliveryHandler,
		paymentHandler,
		razorpayHandler,
		materializerHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.APILogging(
				corsMiddleware(router))))

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Materializer.Enabled {
		go materializer.RunDaily(workerCtx, cfg.Materializer.RunAt)
	}
	if cfg.Backup.Enabled {
		go backup.NewService(cfg).RunPeriodic(workerCtx)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
