package obligations

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

// Handler manages obligation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers obligation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/status", h.setStatus)
	r.Delete("/{id}", h.delete)
}

type obligationRequest struct {
	Title      string       `json:"title" validate:"required"`
	Type       Type         `json:"type" validate:"required"`
	DueDate    *shared.Date `json:"due_date"`
	Status     Status       `json:"status"`
	SponsorID  *uuid.UUID   `json:"sponsor_id"`
	ContractID *uuid.UUID   `json:"contract_id"`
}

type statusRequest struct {
	Status Status `json:"status" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	openOnly := r.URL.Query().Get("open") == "true"
	obligations, err := h.service.List(r.Context(), ws, openOnly)
	if err != nil {
		h.respondError(w, "list obligations", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"obligations": obligations})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid obligation id")
		return
	}
	o, err := h.service.Get(r.Context(), ws, id)
	if err != nil {
		h.respondError(w, "get obligation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var req obligationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	o, err := h.service.Create(r.Context(), Obligation{
		WorkspaceID: ws,
		Title:       req.Title,
		Type:        req.Type,
		DueDate:     req.DueDate,
		Status:      req.Status,
		SponsorID:   req.SponsorID,
		ContractID:  req.ContractID,
	})
	if err != nil {
		h.respondError(w, "create obligation", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid obligation id")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.SetStatus(r.Context(), ws, id, req.Status); err != nil {
		h.respondError(w, "set obligation status", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid obligation id")
		return
	}
	if err := h.service.Delete(r.Context(), ws, id); err != nil {
		h.respondError(w, "delete obligation", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
