package sponsors

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sponsor is a brand or partner the athlete works with.
type Sponsor struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Contact is a person at a sponsor. A contact flagged is_billing receives
// invoices for that sponsor.
type Contact struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	SponsorID   *uuid.UUID `json:"sponsor_id"`
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	IsBilling   bool       `json:"is_billing"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("sponsors: not found")
