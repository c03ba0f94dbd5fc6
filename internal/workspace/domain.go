package workspace

import (
	"time"

	"github.com/google/uuid"
)

// Workspace groups one athlete's sponsors, contracts, obligations and
// invoices. Every domain row is scoped to exactly one workspace.
type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership links a user to a workspace.
type Membership struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}
