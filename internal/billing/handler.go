package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Handler manages billing profile endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers billing profile routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.getProfile)
	r.Put("/", h.saveProfile)
}

type profileRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`

	PaymentMethod       string `json:"payment_method"`
	BankName            string `json:"bank_name"`
	AccountName         string `json:"account_name"`
	AccountNumberLast4  string `json:"account_number_last4" validate:"omitempty,len=4,numeric"`
	RoutingNumber       string `json:"routing_number"`
	PaymentInstructions string `json:"payment_instructions"`
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	profile, err := h.service.Get(r.Context(), ws)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("get billing profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	ws, _ := shared.WorkspaceFromContext(r.Context())
	var req profileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	profile, err := h.service.Save(r.Context(), Profile{
		WorkspaceID:         ws,
		BusinessName:        req.BusinessName,
		Email:               req.Email,
		Phone:               req.Phone,
		Website:             req.Website,
		AddressLine1:        req.AddressLine1,
		AddressLine2:        req.AddressLine2,
		City:                req.City,
		State:               req.State,
		PostalCode:          req.PostalCode,
		Country:             req.Country,
		PaymentMethod:       req.PaymentMethod,
		BankName:            req.BankName,
		AccountName:         req.AccountName,
		AccountNumberLast4:  req.AccountNumberLast4,
		RoutingNumber:       req.RoutingNumber,
		PaymentInstructions: req.PaymentInstructions,
	})
	if err != nil {
		h.logger.Error("save billing profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}
