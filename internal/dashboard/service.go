package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/calebo95/athlete-portal/internal/contracts"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/obligations"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// ObligationSource loads workspace obligations.
type ObligationSource interface {
	List(ctx context.Context, workspaceID uuid.UUID, openOnly bool) ([]obligations.Obligation, error)
}

// InvoiceSource loads workspace invoices.
type InvoiceSource interface {
	List(ctx context.Context, workspaceID uuid.UUID, req invoices.ListRequest) ([]invoices.Invoice, error)
}

// ContractSource loads workspace contracts.
type ContractSource interface {
	List(ctx context.Context, workspaceID uuid.UUID) ([]contracts.Contract, error)
}

// Service assembles the dashboard summary from the workspace collections.
// Concurrent requests for the same workspace share one computation.
type Service struct {
	obligations ObligationSource
	invoices    InvoiceSource
	contracts   ContractSource
	today       func() shared.Date
	group       singleflight.Group
}

// NewService builds a Service instance. today may be nil, in which case the
// local wall clock is used.
func NewService(obs ObligationSource, invs InvoiceSource, cons ContractSource, today func() shared.Date) *Service {
	if today == nil {
		today = func() shared.Date { return shared.Today(nil) }
	}
	return &Service{obligations: obs, invoices: invs, contracts: cons, today: today}
}

// Summary loads the collections and buckets them for the workspace.
func (s *Service) Summary(ctx context.Context, workspaceID uuid.UUID) (Summary, error) {
	v, err, _ := s.group.Do(workspaceID.String(), func() (any, error) {
		return s.build(ctx, workspaceID)
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

func (s *Service) build(ctx context.Context, workspaceID uuid.UUID) (Summary, error) {
	obs, err := s.obligations.List(ctx, workspaceID, true)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard: load obligations: %w", err)
	}
	invs, err := s.invoices.List(ctx, workspaceID, invoices.ListRequest{Statuses: []invoices.Status{invoices.StatusSent}})
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard: load invoices: %w", err)
	}
	cons, err := s.contracts.List(ctx, workspaceID)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard: load contracts: %w", err)
	}
	return Aggregate(s.today(), obs, invs, cons), nil
}
