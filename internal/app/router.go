package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/calebo95/athlete-portal/internal/billing"
	"github.com/calebo95/athlete-portal/internal/contracts"
	"github.com/calebo95/athlete-portal/internal/dashboard"
	"github.com/calebo95/athlete-portal/internal/identity"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/obligations"
	"github.com/calebo95/athlete-portal/internal/observability"
	"github.com/calebo95/athlete-portal/internal/reminders"
	"github.com/calebo95/athlete-portal/internal/sponsors"
	"github.com/calebo95/athlete-portal/internal/workspace"
	"github.com/calebo95/athlete-portal/jobs"
	"github.com/calebo95/athlete-portal/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Resolver identity.Resolver

	WorkspaceService *workspace.Service

	IdentityHandler    *identity.Handler
	WorkspaceHandler   *workspace.Handler
	SponsorsHandler    *sponsors.Handler
	ContractsHandler   *contracts.Handler
	ObligationsHandler *obligations.Handler
	InvoicesHandler    *invoices.Handler
	BillingHandler     *billing.Handler
	DashboardHandler   *dashboard.Handler
	RemindersHandler   *reminders.Handler

	ReportHandler *report.Handler
	JobHandler    *jobs.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Cron triggers authenticate with a shared secret, not a user token.
	if params.RemindersHandler != nil {
		r.Route("/jobs", params.RemindersHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/queue", params.JobHandler.MountRoutes)
	}
	if params.ReportHandler != nil {
		r.Route("/report", params.ReportHandler.MountRoutes)
	}

	// Everything below requires an authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(identity.Middleware(params.Logger, params.Resolver))

		r.Route("/me", params.IdentityHandler.MountRoutes)
		r.Route("/workspaces", func(r chi.Router) {
			params.WorkspaceHandler.MountRoutes(r)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Use(workspace.Middleware(params.Logger, params.WorkspaceService))

				r.Route("/sponsors", params.SponsorsHandler.MountSponsorRoutes)
				r.Route("/contacts", params.SponsorsHandler.MountContactRoutes)
				r.Route("/contracts", params.ContractsHandler.MountRoutes)
				r.Route("/obligations", params.ObligationsHandler.MountRoutes)
				r.Route("/invoices", params.InvoicesHandler.MountRoutes)
				r.Route("/billing-profile", params.BillingHandler.MountRoutes)
				r.Route("/dashboard", params.DashboardHandler.MountRoutes)
			})
		})
	})

	return r
}
