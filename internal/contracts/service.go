package contracts

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for contracts.
type RepositoryPort interface {
	List(ctx context.Context, workspaceID uuid.UUID) ([]Contract, error)
	Get(ctx context.Context, workspaceID, id uuid.UUID) (Contract, error)
	Create(ctx context.Context, c Contract) (Contract, error)
	Update(ctx context.Context, c Contract) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// Service handles contract business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

func validate(c Contract) error {
	if c.SponsorID == uuid.Nil {
		return ErrSponsor
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return ErrDateOrder
	}
	if c.BasePay != nil && *c.BasePay < 0 {
		return ErrNegativePay
	}
	return nil
}

// List returns workspace contracts ordered by end date, soonest first.
func (s *Service) List(ctx context.Context, workspaceID uuid.UUID) ([]Contract, error) {
	return s.repo.List(ctx, workspaceID)
}

// Get returns one contract.
func (s *Service) Get(ctx context.Context, workspaceID, id uuid.UUID) (Contract, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

// Create validates and persists a contract.
func (s *Service) Create(ctx context.Context, c Contract) (Contract, error) {
	if err := validate(c); err != nil {
		return Contract{}, err
	}
	c.ID = uuid.New()
	return s.repo.Create(ctx, c)
}

// Update validates and saves contract changes.
func (s *Service) Update(ctx context.Context, c Contract) error {
	if err := validate(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a contract. Invoices and obligations that referenced it keep
// their dangling reference handling in the store.
func (s *Service) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.repo.Delete(ctx, workspaceID, id)
}
