package invoices

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Status enumerates invoice statuses.
type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
	StatusVoid  Status = "void"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// Invoice is an invoice header plus its ordered line items. Amount is always
// derived from the items; it is never user-entered once items exist.
type Invoice struct {
	ID             uuid.UUID    `json:"id"`
	WorkspaceID    uuid.UUID    `json:"workspace_id"`
	Number         *string      `json:"invoice_number"`
	SponsorID      *uuid.UUID   `json:"sponsor_id"`
	ContractID     *uuid.UUID   `json:"contract_id"`
	Amount         float64      `json:"amount"`
	Status         Status       `json:"status"`
	SentDate       *shared.Date `json:"sent_date"`
	PaidDate       *shared.Date `json:"paid_date"`
	Notes          string       `json:"notes"`
	ReminderSentAt *time.Time   `json:"reminder_sent_at"`
	CreatedBy      *uuid.UUID   `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Items          []LineItem   `json:"items,omitempty"`
}

// LineItem is one billable row of an invoice. Items are owned exclusively by
// their invoice and are replaced as a whole set on every edit.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	LineNo      int       `json:"line_no"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// Total returns quantity times unit price for the row.
func (li LineItem) Total() float64 {
	return li.Quantity * li.UnitPrice
}

// Sentinel errors for invoice validation and persistence.
var (
	ErrNotFound         = errors.New("invoices: not found")
	ErrEmptyInvoice     = errors.New("invoices: no line items after discarding empty rows")
	ErrInvalidQuantity  = errors.New("invoices: quantity must be a positive number")
	ErrInvalidUnitPrice = errors.New("invoices: unit price must be a non-negative number")
	ErrInvalidStatus    = errors.New("invoices: unknown status")
	ErrDuplicateNumber  = errors.New("invoices: invoice number already in use")
	ErrNumberImmutable  = errors.New("invoices: invoice number cannot be changed once set")
	ErrVoidLocked       = errors.New("invoices: voided invoice cannot change status")
)
