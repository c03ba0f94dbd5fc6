package obligations

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for obligations.
type RepositoryPort interface {
	List(ctx context.Context, workspaceID uuid.UUID, openOnly bool) ([]Obligation, error)
	Get(ctx context.Context, workspaceID, id uuid.UUID) (Obligation, error)
	Create(ctx context.Context, o Obligation) (Obligation, error)
	UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// Service handles obligation business logic. Obligations are created and then
// driven through status transitions only; there is no partial edit.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns workspace obligations ordered by due date.
func (s *Service) List(ctx context.Context, workspaceID uuid.UUID, openOnly bool) ([]Obligation, error) {
	return s.repo.List(ctx, workspaceID, openOnly)
}

// Get returns one obligation.
func (s *Service) Get(ctx context.Context, workspaceID, id uuid.UUID) (Obligation, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

// Create validates and persists an obligation.
func (s *Service) Create(ctx context.Context, o Obligation) (Obligation, error) {
	o.Title = strings.TrimSpace(o.Title)
	if o.Title == "" {
		return Obligation{}, ErrTitleRequired
	}
	if !ValidType(o.Type) {
		return Obligation{}, ErrInvalidType
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if !ValidStatus(o.Status) {
		return Obligation{}, ErrInvalidStatus
	}
	o.ID = uuid.New()
	return s.repo.Create(ctx, o)
}

// SetStatus transitions the obligation to the given status.
func (s *Service) SetStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, workspaceID, id, status)
}

// Delete removes an obligation.
func (s *Service) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.repo.Delete(ctx, workspaceID, id)
}
