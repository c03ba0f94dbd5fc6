package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/calebo95/athlete-portal/internal/app"
	jobmetrics "github.com/calebo95/athlete-portal/internal/jobs"
	"github.com/calebo95/athlete-portal/internal/mailer"
	"github.com/calebo95/athlete-portal/internal/platform/db"
	"github.com/calebo95/athlete-portal/internal/reminders"
	"github.com/calebo95/athlete-portal/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	_ = godotenv.Load()

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

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	smtpHost := cfg.SMTPHost
	if smtpHost != "" {
		smtpHost = cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort)
	}
	mailClient, err := mailer.NewSMTPClient(smtpHost, cfg.SMTPUser, cfg.SMTPPassword, cfg.ReminderFromEmail, cfg.SMTPSkipTLS)
	if err != nil {
		logger.Error("init mailer", slog.Any("error", err))
		os.Exit(1)
	}
	if !mailClient.IsEnabled() {
		logger.Warn("mail delivery disabled, reminder sweeps will be skipped")
	}

	remindersRepo := reminders.NewRepository(pool)
	ownerRepo := reminders.NewOwnerRepository(pool)
	lease := reminders.NewRedisLease(redisClient, cfg.ReminderLeaseTTL)
	remindersService := reminders.NewService(logger, remindersRepo, ownerRepo, mailClient, lease)

	sweepJob := jobs.NewReminderSweepJob(remindersService, logger, jobmetrics.NewMetrics(nil))

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReminderSweep, Handler: sweepJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.ReminderCronSpec, Task: jobs.NewReminderSweepTask(), Options: []asynq.Option{asynq.MaxRetry(0)}},
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
