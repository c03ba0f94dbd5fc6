package workspace

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Handler exposes workspace listing and default resolution.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers workspace routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/default", h.resolveDefault)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	workspaces, err := h.service.Memberships(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list workspaces", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"workspaces": workspaces})
}

func (h *Handler) resolveDefault(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	ws, err := h.service.ResolveDefault(r.Context(), user.ID)
	switch {
	case errors.Is(err, shared.ErrNoWorkspace):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no workspace membership")
	case errors.Is(err, shared.ErrAmbiguousWorkspace):
		httpx.Problem(w, http.StatusConflict, "Conflict", "multiple workspaces, pick one explicitly")
	case err != nil:
		h.logger.Error("resolve default workspace", slog.Any("error", err))
		httpx.RespondError(w, err)
	default:
		httpx.JSON(w, http.StatusOK, ws)
	}
}
