package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for billing profiles.
type RepositoryPort interface {
	GetProfile(ctx context.Context, workspaceID uuid.UUID) (*Profile, error)
	UpsertProfile(ctx context.Context, p Profile) (*Profile, error)
}

// Service handles billing profile business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get returns the workspace billing profile.
func (s *Service) Get(ctx context.Context, workspaceID uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, workspaceID)
}

// Save creates or replaces the workspace billing profile.
func (s *Service) Save(ctx context.Context, p Profile) (*Profile, error) {
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	if p.BusinessName == "" {
		return nil, fmt.Errorf("billing: business name is required")
	}
	if l := len(p.AccountNumberLast4); l != 0 && l != 4 {
		return nil, fmt.Errorf("billing: account number last4 must be exactly 4 digits")
	}
	return s.repo.UpsertProfile(ctx, p)
}
