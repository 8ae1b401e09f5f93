package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/planner/api/handler"
	"github.com/fastygo/planner/internal/config"
	"github.com/fastygo/planner/internal/infrastructure/ledger"
	"github.com/fastygo/planner/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/planner/internal/infrastructure/postgres"
	"github.com/fastygo/planner/internal/infrastructure/push"
	redisInfra "github.com/fastygo/planner/internal/infrastructure/redis"
	"github.com/fastygo/planner/internal/middleware"
	"github.com/fastygo/planner/internal/reminder"
	"github.com/fastygo/planner/internal/retry"
	"github.com/fastygo/planner/internal/router"
	"github.com/fastygo/planner/internal/services"
	"github.com/fastygo/planner/internal/services/lifecycle"
	"github.com/fastygo/planner/internal/tasklist"
	"github.com/fastygo/planner/pkg/httpcontext"
	"github.com/fastygo/planner/pkg/logger"
	"github.com/fastygo/planner/repository/postgres"
	redisRepo "github.com/fastygo/planner/repository/redis"
	analyticsUC "github.com/fastygo/planner/usecase/analytics"
	categoryUC "github.com/fastygo/planner/usecase/category"
	preferenceUC "github.com/fastygo/planner/usecase/preference"
	taskUC "github.com/fastygo/planner/usecase/task"
)

const (
	ledgerCleanupAt = "03:30"
	monitorInterval = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis, cfg.AppName)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	ledgerStore, err := ledger.Open(cfg.Ledger.Path, "")
	if err != nil {
		zapLogger.Fatal("failed to open reminder ledger", zap.Error(err))
	}
	manager.Register("ledger", func(ctx context.Context) error {
		return ledgerStore.Close()
	})

	mon := monitor.New(monitor.Checks{
		Postgres: monitor.PostgresProbe(pool),
		Redis:    monitor.RedisProbe(redisClient),
		Ledger:   ledgerStore.Size,
	}, monitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	reminderRepo := redisRepo.NewReminderRepository(redisClient, cfg.Redis.KeyPrefix)
	deviceRepo := redisRepo.NewDeviceRepository(redisClient, cfg.Redis.KeyPrefix)

	policy := retry.Policy{
		Attempts:   cfg.Retry.Attempts,
		Initial:    cfg.Retry.InitialDelay,
		Multiplier: cfg.Retry.Multiplier,
	}

	preferenceUseCase := preferenceUC.New(userRepo, deviceRepo, policy, zapLogger)
	planner := reminder.NewPlanner(cfg.Location)
	runner := reminder.NewRunner(reminderRepo, zapLogger,
		reminder.WithLedger(ledgerStore),
		reminder.WithPreferences(preferenceUseCase),
	)

	taskUseCase := taskUC.New(taskRepo, tasklist.NewRegistry(), planner, runner, zapLogger, taskUC.WithRetry(policy))
	categoryUseCase := categoryUC.New(categoryRepo, policy, zapLogger)
	analyticsUseCase := analyticsUC.New(taskUseCase, categoryUseCase, cfg.Location, zapLogger)

	preferenceUseCase.OnReminderChange(func(ctx context.Context, ownerID string) {
		report, err := taskUseCase.Resync(ctx, ownerID)
		if err != nil {
			zapLogger.Warn("reminder resync failed", zap.String("owner_id", ownerID), zap.Error(err))
			return
		}
		zapLogger.Info("reminders resynced",
			zap.String("owner_id", ownerID),
			zap.Int("scheduled", report.Scheduled),
			zap.Int("cancelled", report.Cancelled),
			zap.Int("skipped", report.Skipped),
		)
	})

	scanner := reminder.NewScanner(taskRepo, planner, runner, cfg.Reminders.ScanWindow, zapLogger)
	trigger := services.NewReminderTrigger(scanner, cfg.Context.RequestTimeout, zapLogger)

	scheduler := services.NewScheduler(cfg.Location, zapLogger)
	if _, err := scheduler.ScheduleInterval("reminder_rescan", cfg.Reminders.ScanInterval, trigger.Run); err != nil {
		zapLogger.Fatal("failed to schedule reminder rescan", zap.Error(err))
	}
	if _, err := scheduler.ScheduleDaily("ledger_cleanup", ledgerCleanupAt,
		services.LedgerCleanupJob(ledgerStore, cfg.Ledger.Retention, zapLogger)); err != nil {
		zapLogger.Fatal("failed to schedule ledger cleanup", zap.Error(err))
	}

	if cfg.PushEnabled() {
		pushClient, err := push.NewClient(appCtx, cfg.Push, zapLogger)
		if err != nil {
			zapLogger.Fatal("push client init failed", zap.Error(err))
		}
		dispatcher := services.NewReminderDispatcher(
			reminderRepo,
			deviceRepo,
			pushClient,
			runner,
			mon,
			zapLogger,
			services.DispatcherConfig{BatchSize: cfg.Reminders.DispatchBatch},
		)
		if _, err := scheduler.ScheduleInterval("reminder_dispatch", cfg.Reminders.DispatchInterval,
			dispatcher.Job(cfg.Context.RequestTimeout)); err != nil {
			zapLogger.Fatal("failed to schedule reminder dispatch", zap.Error(err))
		}
	} else {
		zapLogger.Warn("push credentials not configured, reminders are queued but not delivered")
	}

	scheduler.Start()
	manager.Register("scheduler", scheduler.Stop)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:       apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Category:   apiHandler.NewCategoryHandler(categoryUseCase, ctxAdapter, zapLogger),
		Analytics:  apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, zapLogger),
		Preference: apiHandler.NewPreferenceHandler(preferenceUseCase, ctxAdapter, zapLogger),
		Reminder:   apiHandler.NewReminderHandler(trigger, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, trigger, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		return server.ListenAndServe(cfg.Address())
	})
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	if err := manager.Wait(appCtx); err != nil {
		zapLogger.Error("stopping after component failure", zap.Error(err))
	}
	cancel()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
