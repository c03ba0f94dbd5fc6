package reminders

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
)

// Handler exposes the cron trigger for the reminder sweep. The caller
// authenticates with a shared secret; a mismatch is rejected before any
// invoice is read.
type Handler struct {
	logger  *slog.Logger
	service *Service
	secret  string
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, secret string) *Handler {
	return &Handler{logger: logger, service: service, secret: secret}
}

// MountRoutes registers job trigger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invoice-reminders", h.run)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	given := r.Header.Get("X-Cron-Secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.secret)) != 1 {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid cron secret")
		return
	}

	report, err := h.service.Run(r.Context(), time.Now())
	switch {
	case errors.Is(err, ErrRunInProgress):
		httpx.Problem(w, http.StatusConflict, "Conflict", "a reminder run is already in progress")
	case err != nil:
		h.logger.Error("reminder sweep", slog.Any("error", err))
		httpx.RespondError(w, err)
	default:
		httpx.JSON(w, http.StatusOK, report)
	}
}
