package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/config"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/staffing-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/cooldown"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/staffing-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/staffing-backend-go/internal/repository/redis"
	monitorService "github.com/cmlabs-hris/staffing-backend-go/internal/service/monitor"
	notificationService "github.com/cmlabs-hris/staffing-backend-go/internal/service/notification"
	recommendationService "github.com/cmlabs-hris/staffing-backend-go/internal/service/recommendation"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Violation cool-downs live in Redis when configured so every replica
	// shares them; otherwise in process memory with an hourly sweep.
	var (
		cooldownStore notification.CooldownStore
		sweeper       cron.Sweeper
	)
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			slog.Error("Error connecting to redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		cooldownStore = redisRepo.NewViolationCooldown(rdb, "staffing:")
	} else {
		memory := cooldown.NewMemoryStore()
		cooldownStore = memory
		sweeper = memory
	}

	businessRepo := postgresql.NewBusinessRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	submissionRepo := postgresql.NewSubmissionRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	settingRepo := postgresql.NewNotificationSettingRepository(db)
	recipientDirectory := postgresql.NewRecipientDirectory(db)
	weightsRepo := postgresql.NewScoreWeightsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	hub := sse.NewHub()

	recommendationSvc := recommendationService.NewRecommendationService(
		submissionRepo,
		employeeRepo,
		scheduleRepo,
		weightsRepo,
		cfg.Recommendation.SubmissionLookback,
	)
	weightsSvc := recommendationService.NewWeightsService(weightsRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	settingSvc := notificationService.NewSettingService(settingRepo, postgresql.NewTransactor(db))
	dispatcher := notificationService.NewDispatcher(notificationRepo, hub)
	monitorSvc := monitorService.NewMonitorService(
		businessRepo,
		attendanceRepo,
		settingRepo,
		recipientDirectory,
		dispatcher,
		cooldownStore,
		monitorService.Config{
			Concurrency: cfg.Monitor.Concurrency,
			Cooldown:    cfg.Monitor.NotifyCooldown,
		},
	)

	if cfg.Monitor.Interval > 0 {
		scheduler := cron.NewScheduler()
		cron.NewMonitorJobs(monitorSvc, sweeper).RegisterJobs(scheduler, cfg.Monitor.Interval, cfg.Monitor.Timeout)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	} else {
		slog.Info("Attendance monitor schedule disabled, use POST /api/v1/monitor/run")
	}

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewRecommendationHandler(recommendationSvc, weightsSvc),
		appHTTP.NewNotificationHandler(notificationSvc, JWTService),
		appHTTP.NewNotificationSettingHandler(settingSvc),
		appHTTP.NewMonitorHandler(monitorSvc, cfg.Monitor.Token),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
