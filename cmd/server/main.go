package main

import (
	"context"
	"log"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/workaholic/backend/api/handler"
	"github.com/workaholic/backend/internal/config"
	"github.com/workaholic/backend/internal/infrastructure/journal"
	"github.com/workaholic/backend/internal/infrastructure/monitor"
	pgInfra "github.com/workaholic/backend/internal/infrastructure/postgres"
	"github.com/workaholic/backend/internal/infrastructure/push"
	redisInfra "github.com/workaholic/backend/internal/infrastructure/redis"
	"github.com/workaholic/backend/internal/middleware"
	"github.com/workaholic/backend/internal/router"
	"github.com/workaholic/backend/internal/services"
	"github.com/workaholic/backend/internal/services/lifecycle"
	"github.com/workaholic/backend/pkg/faillog"
	"github.com/workaholic/backend/pkg/httpcontext"
	"github.com/workaholic/backend/pkg/logger"
	"github.com/workaholic/backend/repository"
	memoryRepo "github.com/workaholic/backend/repository/memory"
	"github.com/workaholic/backend/repository/postgres"
	redisRepo "github.com/workaholic/backend/repository/redis"
	authUC "github.com/workaholic/backend/usecase/auth"
	"github.com/workaholic/backend/usecase/notify"
	taskUC "github.com/workaholic/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	sessionRepo, redisClient := buildSessionStore(cfg, zapLogger)
	if redisClient != nil {
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	outcomeJournal, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		zapLogger.Fatal("failed to open outcome journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return outcomeJournal.Close()
	})
	if cfg.Journal.Retention > 0 {
		if err := outcomeJournal.Cleanup(time.Now().Add(-cfg.Journal.Retention)); err != nil {
			zapLogger.Warn("journal retention sweep failed", zap.Error(err))
		}
	}

	failureLog, err := faillog.Open(cfg.FailureLog.Path)
	if err != nil {
		zapLogger.Fatal("failed to open failure log", zap.Error(err))
	}
	manager.Register("failure_log", func(ctx context.Context) error {
		return failureLog.Close()
	})

	mon := monitor.New(pool, redisClient, outcomeJournal, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	loc := cfg.Location()
	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool, loc)

	fcmSender := push.NewFCMSender(appCtx, cfg.Push.FCMCredentialsFile, cfg.Push.SendTimeout, zapLogger)
	expoSender := push.NewExpoSender(cfg.Push.ExpoEndpoint, cfg.Push.SendTimeout)

	notifySvc := notify.New(
		taskRepo,
		userRepo,
		fcmSender,
		expoSender,
		outcomeJournal,
		failureLog,
		zapLogger,
		notify.Options{
			WindowOffset: cfg.Scheduler.WindowOffset,
			WindowWidth:  cfg.Scheduler.WindowWidth,
			PendingOnly:  cfg.Scheduler.PendingOnly,
			Location:     loc,
		},
	)

	scheduler := services.NewNotificationScheduler(notifySvc, mon, zapLogger,
		services.SchedulerConfig{Interval: cfg.Scheduler.Interval})
	if fcmSender.Ready() {
		scheduler.Start()
		manager.Register("notification_scheduler", func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		})
	} else {
		zapLogger.Warn("fcm channel not initialized, due-task scheduler disabled")
	}

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Session.TTL, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth: apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task: apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(
			notifySvc, fcmSender, expoSender, userRepo,
			ctxAdapter, zapLogger, cfg.Scheduler.DefaultLookaheadMinutes),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(sessionRepo, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// buildSessionStore picks the session backend. Memory is the default and
// keeps the historical lost-on-restart behavior; redis makes sessions
// durable when configured.
func buildSessionStore(cfg *config.Config, zapLogger *zap.Logger) (repository.SessionRepository, *goRedis.Client) {
	if cfg.Session.Backend == "redis" {
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		return redisRepo.NewSessionRepository(client, cfg.Session.TTL), client
	}
	return memoryRepo.NewSessionRepository(cfg.Session.TTL), nil
}
