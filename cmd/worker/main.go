package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nhw-erp/nhw-erp/internal/app"
	"github.com/nhw-erp/nhw-erp/internal/backup"
	"github.com/nhw-erp/nhw-erp/internal/inventory"
	"github.com/nhw-erp/nhw-erp/internal/masterdata/products"
	"github.com/nhw-erp/nhw-erp/internal/notify"
	"github.com/nhw-erp/nhw-erp/internal/platform/cache"
	"github.com/nhw-erp/nhw-erp/internal/platform/db"
	"github.com/nhw-erp/nhw-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	backupRepo := backup.NewRepository(pool)
	backupService := backup.NewService(backupRepo, notifier, logger)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, notifier, logger)

	productRepo := products.NewRepository(pool)
	productService := products.NewService(productRepo, notifier)

	handlers := &jobs.Handlers{
		Backups:  backupService,
		Ledger:   inventoryService,
		LowStock: productService,
		Logger:   logger,
	}

	now := time.Now().UTC()
	backupTask, err := jobs.NewAutoBackupTask(now)
	if err != nil {
		logger.Error("build backup task", slog.Any("error", err))
		os.Exit(1)
	}
	pruneTask, err := jobs.NewPruneStockHistoryTask(now)
	if err != nil {
		logger.Error("build prune task", slog.Any("error", err))
		os.Exit(1)
	}
	lowStockTask, err := jobs.NewLowStockScanTask(now)
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAutoBackup, Handler: handlers.HandleAutoBackup},
			{Type: jobs.TaskPruneStockHistory, Handler: handlers.HandlePruneStockHistory},
			{Type: jobs.TaskLowStockScan, Handler: handlers.HandleLowStockScan},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.BackupCron, Task: backupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.PruneCron, Task: pruneTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.LowStockCron, Task: lowStockTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
