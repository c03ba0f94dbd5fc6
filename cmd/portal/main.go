package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/calebo95/athlete-portal/internal/app"
	"github.com/calebo95/athlete-portal/internal/billing"
	"github.com/calebo95/athlete-portal/internal/contracts"
	"github.com/calebo95/athlete-portal/internal/dashboard"
	"github.com/calebo95/athlete-portal/internal/identity"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/mailer"
	"github.com/calebo95/athlete-portal/internal/obligations"
	"github.com/calebo95/athlete-portal/internal/observability"
	"github.com/calebo95/athlete-portal/internal/platform/db"
	"github.com/calebo95/athlete-portal/internal/reminders"
	"github.com/calebo95/athlete-portal/internal/sponsors"
	"github.com/calebo95/athlete-portal/internal/workspace"
	"github.com/calebo95/athlete-portal/jobs"
	"github.com/calebo95/athlete-portal/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	resolver := identity.NewHTTPResolver(cfg.IdentityUserinfoURL, cfg.IdentityTimeout)

	workspaceRepo := workspace.NewRepository(dbpool)
	workspaceService := workspace.NewService(workspaceRepo)
	workspaceHandler := workspace.NewHandler(logger, workspaceService)

	sponsorsRepo := sponsors.NewRepository(dbpool)
	sponsorsService := sponsors.NewService(sponsorsRepo)
	sponsorsHandler := sponsors.NewHandler(logger, sponsorsService)

	billingRepo := billing.NewRepository(dbpool)
	billingService := billing.NewService(billingRepo)
	billingHandler := billing.NewHandler(logger, billingService)

	contractsRepo := contracts.NewRepository(dbpool)
	contractsService := contracts.NewService(contractsRepo)
	contractsHandler := contracts.NewHandler(logger, contractsService)

	obligationsRepo := obligations.NewRepository(dbpool)
	obligationsService := obligations.NewService(obligationsRepo)
	obligationsHandler := obligations.NewHandler(logger, obligationsService)

	lifecycle := invoices.Lifecycle{RestrictVoid: cfg.InvoiceRestrictVoid}
	invoicesRepo := invoices.NewRepository(dbpool)
	invoicesService := invoices.NewService(invoicesRepo, sponsorsService, billingService, lifecycle, nil)

	reportClient := report.NewClient(cfg.GotenbergURL)
	reportHandler := report.NewHandler(reportClient, logger)
	renderer := report.NewRenderer(reportClient)
	invoicesHandler := invoices.NewHandler(logger, invoicesService, renderer)

	dashboardService := dashboard.NewService(obligationsService, invoicesService, contractsService, nil)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

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

	remindersRepo := reminders.NewRepository(dbpool)
	ownerRepo := reminders.NewOwnerRepository(dbpool)
	lease := reminders.NewRedisLease(redisClient, cfg.ReminderLeaseTTL)
	remindersService := reminders.NewService(logger, remindersRepo, ownerRepo, mailClient, lease)
	remindersHandler := reminders.NewHandler(logger, remindersService, cfg.CronSecret)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Resolver:           resolver,
		WorkspaceService:   workspaceService,
		IdentityHandler:    identity.NewHandler(),
		WorkspaceHandler:   workspaceHandler,
		SponsorsHandler:    sponsorsHandler,
		ContractsHandler:   contractsHandler,
		ObligationsHandler: obligationsHandler,
		InvoicesHandler:    invoicesHandler,
		BillingHandler:     billingHandler,
		DashboardHandler:   dashboardHandler,
		RemindersHandler:   remindersHandler,
		ReportHandler:      reportHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
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
