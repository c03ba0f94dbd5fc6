package workspace

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Middleware resolves the {workspaceID} route parameter, checks that the
// authenticated user is a member, and stores the workspace id on the request
// context for downstream handlers.
func Middleware(logger *slog.Logger, service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.UserFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			id, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
			if err != nil {
				httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid workspace id")
				return
			}
			if err := service.RequireMember(r.Context(), id, user.ID); err != nil {
				if errors.Is(err, shared.ErrNotMember) {
					httpx.Problem(w, http.StatusForbidden, "Forbidden", "not a member of this workspace")
					return
				}
				logger.Error("workspace membership check", slog.Any("error", err))
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithWorkspace(r.Context(), id)))
		})
	}
}
