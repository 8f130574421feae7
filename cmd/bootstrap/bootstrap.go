package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundihub/config"
	deliveryHttp "fundihub/internal/delivery/http"
	"fundihub/internal/delivery/http/handler"
	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/infrastructure/cache"
	"fundihub/internal/infrastructure/database"
	"fundihub/internal/infrastructure/mq"
	"fundihub/internal/integrations/mpesa"
	"fundihub/internal/repository"
	"fundihub/internal/scheduler"
	"fundihub/internal/service"
	"fundihub/internal/usecase"
	"fundihub/pkg/jwt"
	"fundihub/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   *mq.Publisher
	Scheduler   *scheduler.Scheduler
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	log := logrus.StandardLogger()

	// Initialize event publisher. Events are best-effort: when no broker is
	// configured the app runs without one.
	var events service.BookingEvents = &service.NoopBookingEvents{}
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		app.Publisher = publisher
		events = service.NewBookingEvents(publisher, log)
	}

	// Initialize all layers
	server, bookingUsecase, workerUsecase := initializeServer(cfg, db, redisClient, events, log)
	app.Server = server

	// Initialize scheduler
	sched, err := scheduler.NewScheduler(log, bookingUsecase, workerUsecase, cfg.Sweeper.Interval)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	app.Scheduler = sched

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	events service.BookingEvents,
	log *logrus.Logger,
) (*http.Server, usecase.BookingUsecase, usecase.WorkerUsecase) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	clientProfileRepo := repository.NewClientProfileRepository()
	workerProfileRepo := repository.NewWorkerProfileRepository()
	serviceRepo := repository.NewServiceRepository()
	bookingRepo := repository.NewBookingRepository()
	messageRepo := repository.NewMessageRepository()
	reviewRepo := repository.NewReviewRepository()
	paymentRepo := repository.NewPaymentRepository()
	adminActionRepo := repository.NewAdminActionRepository()

	// Initialize domain services
	auditService := service.NewAuditService(db, log, adminActionRepo)

	// Initialize M-Pesa client
	mpesaClient := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		Passkey:        cfg.Mpesa.Passkey,
		CallbackURL:    cfg.Mpesa.CallbackURL,
	}, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, clientProfileRepo, workerProfileRepo, jwtService, redisClient, cfg.App.AdminSecretKey)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, serviceRepo, events, auditService, cfg.App.OpTimeout)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, bookingRepo, workerProfileRepo)
	messageUsecase := usecase.NewMessageUsecase(db, log, messageRepo, userRepo, bookingRepo)
	reviewUsecase := usecase.NewReviewUsecase(db, log, reviewRepo, bookingRepo)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, paymentRepo, bookingRepo, mpesaClient)
	clientUsecase := usecase.NewClientUsecase(db, log, userRepo, clientProfileRepo)
	workerUsecase := usecase.NewWorkerUsecase(db, log, userRepo, workerProfileRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, userRepo, clientProfileRepo, workerProfileRepo, serviceRepo, bookingRepo, paymentRepo, reviewRepo, adminActionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	reviewHandler := handler.NewReviewHandler(reviewUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, customValidator)
	clientHandler := handler.NewClientHandler(clientUsecase, customValidator)
	workerHandler := handler.NewWorkerHandler(workerUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		bookingHandler,
		serviceHandler,
		messageHandler,
		reviewHandler,
		paymentHandler,
		clientHandler,
		workerHandler,
		dashboardHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, bookingUsecase, workerUsecase
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start scheduler
	if err := app.Scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop scheduler
	if app.Scheduler != nil {
		if err := app.Scheduler.Stop(); err != nil {
			logrus.Errorf("Scheduler forced to shutdown: %v", err)
		}
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close message broker connection
	if app.Publisher != nil {
		app.Publisher.Close()
	}
}
