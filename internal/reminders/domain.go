package reminders

import (
	"errors"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Stale invoices are sent, unpaid, unreminded, and at least this many days
// past their sent date.
const StaleAfterDays = 30

// BatchLimit caps how many invoices one run picks up.
const BatchLimit = 200

// ErrRunInProgress is returned when another sweep holds the run lease.
var ErrRunInProgress = errors.New("reminders: run already in progress")

// StaleInvoice is one reminder candidate with its sponsor label resolved.
// SponsorName is nil when the invoice references no sponsor or the sponsor
// row is gone.
type StaleInvoice struct {
	ID          uuid.UUID
	Number      *string
	Amount      float64
	SentDate    shared.Date
	SponsorName *string
	CreatedBy   *uuid.UUID
}

// Report summarizes one sweep.
type Report struct {
	Processed      int `json:"processed"`
	OwnersNotified int `json:"owners_notified"`
	InvoicesMarked int `json:"invoices_marked"`
}
