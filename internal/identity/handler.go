package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Handler exposes the authenticated user.
type Handler struct{}

// NewHandler builds a Handler instance.
func NewHandler() *Handler {
	return &Handler{}
}

// MountRoutes registers identity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.me)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
