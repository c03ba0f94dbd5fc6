package contracts

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Contract is a sponsorship agreement. EndDate and BasePay are optional;
// an open-ended deal has no end date.
type Contract struct {
	ID          uuid.UUID    `json:"id"`
	WorkspaceID uuid.UUID    `json:"workspace_id"`
	SponsorID   uuid.UUID    `json:"sponsor_id"`
	StartDate   *shared.Date `json:"start_date"`
	EndDate     *shared.Date `json:"end_date"`
	BasePay     *float64     `json:"base_pay"`
	Notes       string       `json:"notes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Sentinel errors for contracts.
var (
	ErrNotFound    = errors.New("contracts: not found")
	ErrSponsor     = errors.New("contracts: sponsor is required")
	ErrDateOrder   = errors.New("contracts: end date precedes start date")
	ErrNegativePay = errors.New("contracts: base pay cannot be negative")
)
