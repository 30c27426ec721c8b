package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nhw-erp/nhw-erp/internal/app"
	"github.com/nhw-erp/nhw-erp/internal/auth"
	"github.com/nhw-erp/nhw-erp/internal/backup"
	"github.com/nhw-erp/nhw-erp/internal/billing"
	"github.com/nhw-erp/nhw-erp/internal/inventory"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/platform/cache"
	"github.com/nhw-erp/nhw-erp/internal/platform/db"
	"github.com/nhw-erp/nhw-erp/internal/reports"
	"github.com/nhw-erp/nhw-erp/internal/sales/customers"
	"github.com/nhw-erp/nhw-erp/internal/sales/salespersons"
	"github.com/nhw-erp/nhw-erp/internal/settings"
	"github.com/nhw-erp/nhw-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	notifier := notify.NewRedisNotifier(redisClient, logger)
	sessionManager := auth.NewSessionManager(redisClient, cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, logger)
	if err := authService.SeedAdmin(ctx, cfg.AdminSeedPassword); err != nil {
		logger.Error("seed admin", slog.Any("error", err))
		os.Exit(1)
	}
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	settingsRepo := settings.NewRepository(dbpool)
	settingsService := settings.NewService(settingsRepo, notifier)
	settingsHandler := settings.NewHandler(logger, settingsService)

	productRepo := products.NewRepository(dbpool)
	productService := products.NewService(productRepo, notifier)
	productHandler := products.NewHandler(logger, productService)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo, notifier)
	customerHandler := customers.NewHandler(logger, customerService)

	salesPersonRepo := salespersons.NewRepository(dbpool)
	salesPersonService := salespersons.NewService(salesPersonRepo, notifier)
	salesPersonHandler := salespersons.NewHandler(logger, salesPersonService)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo, notifier, logger)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	billingRepo := billing.NewRepository(dbpool)
	billingService := billing.NewService(billingRepo,
		customerRepo, salesPersonRepo, productRepo, settingsService, notifier, logger)
	billingHandler := billing.NewHandler(logger, billingService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportCache.Listen(ctx, redisClient)
	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	backupRepo := backup.NewRepository(dbpool)
	backupService := backup.NewService(backupRepo, notifier, logger)
	backupHandler := backup.NewHandler(logger, backupService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		SessionMiddleware:  sessionManager.Middleware,
		ProductHandler:     productHandler,
		CustomerHandler:    customerHandler,
		SalesPersonHandler: salesPersonHandler,
		BillingHandler:     billingHandler,
		InventoryHandler:   inventoryHandler,
		SettingsHandler:    settingsHandler,
		ReportsHandler:     reportsHandler,
		BackupHandler:      backupHandler,
		JobsHandler:        jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
