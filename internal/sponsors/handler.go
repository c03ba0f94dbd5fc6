package sponsors

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

// Handler manages sponsor and contact endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountSponsorRoutes registers sponsor routes.
func (h *Handler) MountSponsorRoutes(r chi.Router) {
	r.Get("/", h.listSponsors)
	r.Post("/", h.createSponsor)
	r.Get("/{id}", h.getSponsor)
	r.Put("/{id}", h.updateSponsor)
	r.Delete("/{id}", h.deleteSponsor)
}

// MountContactRoutes registers contact routes.
func (h *Handler) MountContactRoutes(r chi.Router) {
	r.Get("/", h.listContacts)
	r.Post("/", h.createContact)
	r.Put("/{id}", h.updateContact)
	r.Delete("/{id}", h.deleteContact)
}

type sponsorRequest struct {
	Name  string `json:"name" validate:"required"`
	Notes string `json:"notes"`
}

type contactRequest struct {
	SponsorID *uuid.UUID `json:"sponsor_id"`
	Name      string     `json:"name" validate:"required"`
	Company   string     `json:"company"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	IsBilling bool       `json:"is_billing"`
}

func (h *Handler) listSponsors(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	sponsors, err := h.service.List(r.Context(), ws)
	if err != nil {
		h.logger.Error("list sponsors", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sponsors": sponsors})
}

func (h *Handler) getSponsor(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sponsor id")
		return
	}
	sp, err := h.service.Get(r.Context(), ws, id)
	if err != nil {
		h.respondError(w, "get sponsor", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sp)
}

func (h *Handler) createSponsor(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var req sponsorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sp, err := h.service.Create(r.Context(), Sponsor{WorkspaceID: ws, Name: req.Name, Notes: req.Notes})
	if err != nil {
		h.respondError(w, "create sponsor", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sp)
}

func (h *Handler) updateSponsor(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sponsor id")
		return
	}
	var req sponsorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), Sponsor{ID: id, WorkspaceID: ws, Name: req.Name, Notes: req.Notes}); err != nil {
		h.respondError(w, "update sponsor", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) deleteSponsor(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sponsor id")
		return
	}
	if err := h.service.Delete(r.Context(), ws, id); err != nil {
		h.respondError(w, "delete sponsor", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var sponsorID *uuid.UUID
	if raw := r.URL.Query().Get("sponsor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sponsor_id filter")
			return
		}
		sponsorID = &id
	}
	contacts, err := h.service.ListContacts(r.Context(), ws, sponsorID)
	if err != nil {
		h.respondError(w, "list contacts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var req contactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.CreateContact(r.Context(), Contact{
		WorkspaceID: ws,
		SponsorID:   req.SponsorID,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		IsBilling:   req.IsBilling,
	})
	if err != nil {
		h.respondError(w, "create contact", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid contact id")
		return
	}
	var req contactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	err = h.service.UpdateContact(r.Context(), Contact{
		ID:          id,
		WorkspaceID: ws,
		SponsorID:   req.SponsorID,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		IsBilling:   req.IsBilling,
	})
	if err != nil {
		h.respondError(w, "update contact", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid contact id")
		return
	}
	if err := h.service.DeleteContact(r.Context(), ws, id); err != nil {
		h.respondError(w, "delete contact", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
