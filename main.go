// File: courtbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtbook/config"
	"courtbook/cron"
	"courtbook/database"
	attemptRepo "courtbook/database/repository/attempt"
	"courtbook/handlers"
	"courtbook/middleware"
	"courtbook/routes"
	"courtbook/services/admin"
	"courtbook/services/availability"
	"courtbook/services/backend"
	"courtbook/services/booking"
	"courtbook/services/catalog"
	"courtbook/services/storage"
	"courtbook/services/tasks"
	"courtbook/services/user"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis backs the catalog cache, sessions, locks and the expiry queue.
	redisEnabled := cfg.RedisAddr != ""
	if redisEnabled {
		if err := utils.InitCache(); err != nil {
			logger.Warn("main: redis unavailable, falling back to in-memory stores", zap.Error(err))
			redisEnabled = false
		}
	}
	var cacheStore, sessionStore utils.Store
	if redisEnabled {
		cacheStore = utils.NewRedisStore(utils.CacheClient, "")
		sessionStore = utils.NewRedisStore(utils.AuthCacheClient, "")
	} else {
		mem := utils.NewMemoryStore()
		cacheStore, sessionStore = mem, mem
	}

	// MongoDB holds the booking attempt ledger.
	var attempts attemptRepo.AttemptRepository
	if cfg.DatabaseURL != "" {
		if err := database.InitDB(); err != nil {
			logger.Warn("main: mongo unavailable, keeping booking attempts in memory", zap.Error(err))
		} else {
			attempts = attemptRepo.NewMongoAttemptRepo()
		}
	}
	if attempts == nil {
		attempts = attemptRepo.NewMemoryAttemptRepo()
	}

	selector, err := availability.NewSelector(cfg.SlotTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid slot timezone %q: %v", cfg.SlotTimezone, err)
	}

	// services.
	api := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	catalogService := catalog.NewService(api, cacheStore, cfg.CatalogCacheTTL, logger)
	userService := user.NewUserService(api, sessionStore, cfg.SessionTTL, logger)
	adminService := admin.NewAdminService(api, cacheStore, catalogService, logger)
	management := booking.NewManagement(api, attempts, logger)

	var (
		expiry      booking.ExpiryScheduler
		queueClient *asynq.Client
	)
	if redisEnabled {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		expiry = tasks.NewExpiryScheduler(queueClient)
	}
	workflow := booking.NewWorkflow(booking.WorkflowConfig{
		API:        api,
		Attempts:   attempts,
		Locks:      cacheStore,
		Slots:      selector,
		Expiry:     expiry,
		PendingTTL: cfg.PendingBookingTTL,
		Logger:     logger,
	})

	// background workers.
	var worker *asynq.Server
	if redisEnabled {
		worker = cron.InitExpiryWorker(ctx, workflow, logger)
	}
	cron.StartSweeper(ctx, workflow, sweepInterval, logger)
	utils.StartHealthMonitor(ctx, []*redis.Client{utils.CacheClient, utils.AuthCacheClient}, database.MongoClient, 30*time.Second)

	var storageHandler *handlers.StorageHandler
	if config.CloudinaryEnabled() {
		images, err := storage.NewCloudinaryImageStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger)
		if err != nil {
			logger.Warn("main: cloudinary unavailable, court image uploads disabled", zap.Error(err))
		} else {
			storageHandler = handlers.NewStorageHandler(images)
		}
	}

	sessionHandler := handlers.NewSessionHandler(userService)
	slotHandler := handlers.NewSlotHandler(selector)
	courtHandler := handlers.NewCourtHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(workflow, management)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: userService,

		SlotRulesHandler:  slotHandler.RulesHandler,
		SelectSlotHandler: slotHandler.SelectHandler,

		LoginHandler:    sessionHandler.LoginHandler,
		RegisterHandler: sessionHandler.RegisterHandler,
		LogoutHandler:   sessionHandler.LogoutHandler,
		MeHandler:       sessionHandler.MeHandler,

		ListCourtsHandler: courtHandler.ListCourtsHandler,
		GetCourtHandler:   courtHandler.GetCourtHandler,

		StartWorkflowHandler:  bookingHandler.StartWorkflowHandler,
		GetWorkflowHandler:    bookingHandler.GetWorkflowHandler,
		RequestBookingHandler: bookingHandler.RequestBookingHandler,
		ConfirmPaymentHandler: bookingHandler.ConfirmPaymentHandler,
		ListBookingsHandler:   bookingHandler.ListBookingsHandler,
		BookingStatusHandler:  bookingHandler.BookingStatusHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,

		AdminHandler:   handlers.NewAdminHandler(adminService),
		StorageHandler: storageHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(handlers.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: closing queue client", zap.Error(err))
		}
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: closing mongo", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
