package obligations

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Type enumerates obligation kinds.
type Type string

const (
	TypeContent    Type = "content"
	TypeRace       Type = "race"
	TypeAppearance Type = "appearance"
	TypeInvoice    Type = "invoice"
	TypeAdmin      Type = "admin"
)

// ValidType reports whether t is a known obligation type.
func ValidType(t Type) bool {
	switch t {
	case TypeContent, TypeRace, TypeAppearance, TypeInvoice, TypeAdmin:
		return true
	}
	return false
}

// Status enumerates obligation statuses.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusSkipped    Status = "skipped"
)

// ValidStatus reports whether s is a known obligation status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusSkipped:
		return true
	}
	return false
}

// Open reports whether the obligation still needs attention.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// Obligation is a tracked deliverable owed to a sponsor.
type Obligation struct {
	ID          uuid.UUID    `json:"id"`
	WorkspaceID uuid.UUID    `json:"workspace_id"`
	Title       string       `json:"title"`
	Type        Type         `json:"type"`
	DueDate     *shared.Date `json:"due_date"`
	Status      Status       `json:"status"`
	SponsorID   *uuid.UUID   `json:"sponsor_id"`
	ContractID  *uuid.UUID   `json:"contract_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Sentinel errors for obligations.
var (
	ErrNotFound      = errors.New("obligations: not found")
	ErrTitleRequired = errors.New("obligations: title is required")
	ErrInvalidType   = errors.New("obligations: unknown type")
	ErrInvalidStatus = errors.New("obligations: unknown status")
)
