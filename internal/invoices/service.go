package invoices

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/billing"
	"github.com/calebo95/athlete-portal/internal/shared"
	"github.com/calebo95/athlete-portal/internal/sponsors"
)

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	Get(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, workspaceID uuid.UUID, req ListRequest) ([]Invoice, error)
	// Create persists the header and its items in one transaction.
	Create(ctx context.Context, inv *Invoice) error
	// Replace updates the header and swaps the full line-item set in one
	// transaction. A failure leaves the old set intact.
	Replace(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status, sentDate, paidDate *shared.Date) error
}

// SponsorSource resolves sponsor records for invoice display and print.
type SponsorSource interface {
	Get(ctx context.Context, workspaceID, id uuid.UUID) (sponsors.Sponsor, error)
	BillingContact(ctx context.Context, workspaceID, sponsorID uuid.UUID) (*sponsors.Contact, error)
}

// ProfileSource resolves the workspace billing profile.
type ProfileSource interface {
	Get(ctx context.Context, workspaceID uuid.UUID) (*billing.Profile, error)
}

// ListRequest filters invoice listings.
type ListRequest struct {
	// Statuses limits results to the given statuses. Empty means all.
	Statuses []Status
	Limit    int
}

// SaveInput is the edit-form payload for creating or editing an invoice.
type SaveInput struct {
	Number     *string
	SponsorID  *uuid.UUID
	ContractID *uuid.UUID
	Status     Status
	SentDate   *shared.Date
	PaidDate   *shared.Date
	Notes      string
	Items      []LineItemInput
}

// Service handles invoice business logic.
type Service struct {
	repo      RepositoryPort
	sponsors  SponsorSource
	profiles  ProfileSource
	lifecycle Lifecycle
	today     func() shared.Date
}

// NewService builds a Service instance. today supplies the wall-clock date
// used for status side effects; nil defaults to the local date.
func NewService(repo RepositoryPort, sponsorSrc SponsorSource, profileSrc ProfileSource, lifecycle Lifecycle, today func() shared.Date) *Service {
	if today == nil {
		today = func() shared.Date { return shared.Today(nil) }
	}
	return &Service{repo: repo, sponsors: sponsorSrc, profiles: profileSrc, lifecycle: lifecycle, today: today}
}

// List returns invoices for the workspace. Items are re-sorted by line number
// before being returned.
func (s *Service) List(ctx context.Context, workspaceID uuid.UUID, req ListRequest) ([]Invoice, error) {
	invs, err := s.repo.List(ctx, workspaceID, req)
	if err != nil {
		return nil, err
	}
	for i := range invs {
		SortItems(invs[i].Items)
	}
	return invs, nil
}

// Get returns a single invoice with its items sorted by line number.
func (s *Service) Get(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	SortItems(inv.Items)
	return inv, nil
}

// Create validates the input and persists a new invoice with its items.
func (s *Service) Create(ctx context.Context, workspaceID, createdBy uuid.UUID, input SaveInput) (*Invoice, error) {
	if !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	items, amount, err := NormalizeLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Number:      input.Number,
		SponsorID:   input.SponsorID,
		ContractID:  input.ContractID,
		Amount:      amount,
		SentDate:    input.SentDate,
		PaidDate:    input.PaidDate,
		Notes:       input.Notes,
		CreatedBy:   &createdBy,
		Items:       items,
	}
	for i := range inv.Items {
		inv.Items[i].ID = uuid.New()
		inv.Items[i].InvoiceID = inv.ID
	}

	if err := s.lifecycle.Apply(inv, input.Status, s.today()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// Edit replaces the invoice header fields and the full line-item set.
// The invoice number is immutable once set.
func (s *Service) Edit(ctx context.Context, workspaceID, id uuid.UUID, input SaveInput) (*Invoice, error) {
	if !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	inv, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if inv.Number != nil && (input.Number == nil || *input.Number != *inv.Number) {
		return nil, ErrNumberImmutable
	}

	items, amount, err := NormalizeLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	inv.Number = input.Number
	inv.SponsorID = input.SponsorID
	inv.ContractID = input.ContractID
	inv.Amount = amount
	inv.SentDate = input.SentDate
	inv.PaidDate = input.PaidDate
	inv.Notes = input.Notes
	inv.Items = items
	for i := range inv.Items {
		inv.Items[i].ID = uuid.New()
		inv.Items[i].InvoiceID = inv.ID
	}

	if err := s.lifecycle.Apply(inv, input.Status, s.today()); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, inv); err != nil {
		return nil, fmt.Errorf("edit invoice: %w", err)
	}
	return inv, nil
}

// SetStatus is the quick list-view transition: it loads the invoice, applies
// the lifecycle date rules for today, and persists status and dates.
func (s *Service) SetStatus(ctx context.Context, workspaceID, id uuid.UUID, target Status) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.Apply(inv, target, s.today()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, workspaceID, id, inv.Status, inv.SentDate, inv.PaidDate); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return inv, nil
}

// MarkSent transitions the invoice to sent.
func (s *Service) MarkSent(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	return s.SetStatus(ctx, workspaceID, id, StatusSent)
}

// MarkPaid transitions the invoice to paid.
func (s *Service) MarkPaid(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	return s.SetStatus(ctx, workspaceID, id, StatusPaid)
}

// Void transitions the invoice to void.
func (s *Service) Void(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	return s.SetStatus(ctx, workspaceID, id, StatusVoid)
}
