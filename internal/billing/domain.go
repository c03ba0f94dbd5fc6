package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile is the workspace's billing identity printed on invoices and the
// payment details shown to sponsors. One profile per workspace.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`

	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
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
	AccountNumberLast4  string `json:"account_number_last4"`
	RoutingNumber       string `json:"routing_number"`
	PaymentInstructions string `json:"payment_instructions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound indicates the workspace has no billing profile yet.
var ErrNotFound = errors.New("billing: profile not found")
