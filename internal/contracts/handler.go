package contracts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Handler manages contract endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers contract routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type contractRequest struct {
	SponsorID uuid.UUID    `json:"sponsor_id" validate:"required"`
	StartDate *shared.Date `json:"start_date"`
	EndDate   *shared.Date `json:"end_date"`
	BasePay   *float64     `json:"base_pay" validate:"omitempty,gte=0"`
	Notes     string       `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	contracts, err := h.service.List(r.Context(), ws)
	if err != nil {
		h.respondError(w, "list contracts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"contracts": contracts})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid contract id")
		return
	}
	c, err := h.service.Get(r.Context(), ws, id)
	if err != nil {
		h.respondError(w, "get contract", err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var req contractRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Create(r.Context(), Contract{
		WorkspaceID: ws,
		SponsorID:   req.SponsorID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BasePay:     req.BasePay,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(w, "create contract", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid contract id")
		return
	}
	var req contractRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	err = h.service.Update(r.Context(), Contract{
		ID:          id,
		WorkspaceID: ws,
		SponsorID:   req.SponsorID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BasePay:     req.BasePay,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondError(w, "update contract", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid contract id")
		return
	}
	if err := h.service.Delete(r.Context(), ws, id); err != nil {
		h.respondError(w, "delete contract", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrSponsor), errors.Is(err, ErrDateOrder), errors.Is(err, ErrNegativePay):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
