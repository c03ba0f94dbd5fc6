package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// PDFRenderer turns a resolved invoice into PDF bytes. Implemented by the
// report package.
type PDFRenderer interface {
	RenderInvoice(ctx context.Context, data *PDFData) ([]byte, error)
}

// Handler manages invoice endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	renderer  PDFRenderer
	validator *validator.Validate
}

// NewHandler builds a Handler instance. renderer may be nil when PDF export
// is not configured; the endpoint then responds 503.
func NewHandler(logger *slog.Logger, service *Service, renderer PDFRenderer) *Handler {
	return &Handler{logger: logger, service: service, renderer: renderer, validator: validator.New()}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.edit)
	r.Post("/{id}/send", h.markSent)
	r.Post("/{id}/pay", h.markPaid)
	r.Post("/{id}/void", h.void)
	r.Get("/{id}/pdf", h.pdf)
}

type saveRequest struct {
	Number     *string         `json:"invoice_number"`
	SponsorID  *uuid.UUID      `json:"sponsor_id"`
	ContractID *uuid.UUID      `json:"contract_id"`
	Status     Status          `json:"status" validate:"required"`
	SentDate   *shared.Date    `json:"sent_date"`
	PaidDate   *shared.Date    `json:"paid_date"`
	Notes      string          `json:"notes"`
	Items      []LineItemInput `json:"items" validate:"required"`
}

func (req saveRequest) toInput() SaveInput {
	return SaveInput{
		Number:     req.Number,
		SponsorID:  req.SponsorID,
		ContractID: req.ContractID,
		Status:     req.Status,
		SentDate:   req.SentDate,
		PaidDate:   req.PaidDate,
		Notes:      req.Notes,
		Items:      req.Items,
	}
}

// list serves workspace invoices. Default is the working set (draft and
// sent); ?all=true includes paid and void.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	req := ListRequest{Statuses: []Status{StatusDraft, StatusSent}}
	if r.URL.Query().Get("all") == "true" {
		req.Statuses = nil
	}
	invs, err := h.service.List(r.Context(), ws, req)
	if err != nil {
		h.respondError(w, "list invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invs})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	inv, err := h.service.Get(r.Context(), ws, id)
	if err != nil {
		h.respondError(w, "get invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing identity")
		return
	}
	var req saveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.Create(r.Context(), ws, user.ID, req.toInput())
	if err != nil {
		h.respondError(w, "create invoice", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.Edit(r.Context(), ws, id, req.toInput())
	if err != nil {
		h.respondError(w, "edit invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) markSent(w http.ResponseWriter, r *http.Request) {
	h.quickStatus(w, r, StatusSent)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	h.quickStatus(w, r, StatusPaid)
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	h.quickStatus(w, r, StatusVoid)
}

func (h *Handler) quickStatus(w http.ResponseWriter, r *http.Request, target Status) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	inv, err := h.service.SetStatus(r.Context(), ws, id, target)
	if err != nil {
		h.respondError(w, "set invoice status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "pdf rendering is not configured")
		return
	}
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	data, err := h.service.ResolveForPDF(r.Context(), ws, id)
	if err != nil {
		h.respondError(w, "resolve invoice for pdf", err)
		return
	}
	pdf, err := h.renderer.RenderInvoice(r.Context(), data)
	if err != nil {
		h.logger.Error("render invoice pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Render Failed", "pdf renderer unavailable")
		return
	}

	name := data.Invoice.ID.String()
	if data.Invoice.Number != nil {
		name = *data.Invoice.Number
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Invoice-"+name+".pdf"))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid invoice id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrEmptyInvoice),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidUnitPrice),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrNumberImmutable):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrVoidLocked):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrDuplicateNumber):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
