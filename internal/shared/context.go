package shared

import (
	"context"

	"github.com/google/uuid"
)

// User is the identity the request acts as, resolved from a bearer credential
// by the identity provider.
type User struct {
	ID    uuid.UUID
	Email string
}

type userContextKey struct{}

// ContextWithUser stores the resolved user in context.
func ContextWithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext extracts the resolved user from context.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userContextKey{}).(User)
	return u, ok
}

type workspaceContextKey struct{}

// ContextWithWorkspace stores the membership-checked workspace id in context.
func ContextWithWorkspace(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, workspaceContextKey{}, id)
}

// WorkspaceFromContext extracts the current workspace id from context.
func WorkspaceFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(workspaceContextKey{}).(uuid.UUID)
	return id, ok
}
