package sponsors

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for sponsors and contacts.
type RepositoryPort interface {
	ListSponsors(ctx context.Context, workspaceID uuid.UUID) ([]Sponsor, error)
	GetSponsor(ctx context.Context, workspaceID, id uuid.UUID) (Sponsor, error)
	CreateSponsor(ctx context.Context, sp Sponsor) (Sponsor, error)
	UpdateSponsor(ctx context.Context, sp Sponsor) error
	DeleteSponsor(ctx context.Context, workspaceID, id uuid.UUID) error

	ListContacts(ctx context.Context, workspaceID uuid.UUID, sponsorID *uuid.UUID) ([]Contact, error)
	CreateContact(ctx context.Context, c Contact) (Contact, error)
	UpdateContact(ctx context.Context, c Contact) error
	DeleteContact(ctx context.Context, workspaceID, id uuid.UUID) error
}

// Service handles sponsor and contact business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns sponsors for the workspace ordered by name.
func (s *Service) List(ctx context.Context, workspaceID uuid.UUID) ([]Sponsor, error) {
	return s.repo.ListSponsors(ctx, workspaceID)
}

// Get returns a single sponsor.
func (s *Service) Get(ctx context.Context, workspaceID, id uuid.UUID) (Sponsor, error) {
	return s.repo.GetSponsor(ctx, workspaceID, id)
}

// Create validates and persists a sponsor.
func (s *Service) Create(ctx context.Context, sp Sponsor) (Sponsor, error) {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return Sponsor{}, fmt.Errorf("sponsors: name is required")
	}
	sp.ID = uuid.New()
	return s.repo.CreateSponsor(ctx, sp)
}

// Update validates and saves sponsor changes.
func (s *Service) Update(ctx context.Context, sp Sponsor) error {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return fmt.Errorf("sponsors: name is required")
	}
	return s.repo.UpdateSponsor(ctx, sp)
}

// Delete removes a sponsor. Cascade behavior for dependent rows is the
// store's responsibility.
func (s *Service) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.repo.DeleteSponsor(ctx, workspaceID, id)
}

// ListContacts returns contacts, optionally filtered to one sponsor.
func (s *Service) ListContacts(ctx context.Context, workspaceID uuid.UUID, sponsorID *uuid.UUID) ([]Contact, error) {
	return s.repo.ListContacts(ctx, workspaceID, sponsorID)
}

// CreateContact validates and persists a contact.
func (s *Service) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Contact{}, fmt.Errorf("sponsors: contact name is required")
	}
	c.ID = uuid.New()
	return s.repo.CreateContact(ctx, c)
}

// UpdateContact saves contact changes.
func (s *Service) UpdateContact(ctx context.Context, c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("sponsors: contact name is required")
	}
	return s.repo.UpdateContact(ctx, c)
}

// DeleteContact removes a contact.
func (s *Service) DeleteContact(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, workspaceID, id)
}

// BillingContact picks the contact invoices should be billed to: an explicit
// is_billing contact, else one whose role mentions billing, else the earliest
// created contact. Returns nil when the sponsor has no contacts.
func (s *Service) BillingContact(ctx context.Context, workspaceID, sponsorID uuid.UUID) (*Contact, error) {
	contacts, err := s.repo.ListContacts(ctx, workspaceID, &sponsorID)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, nil
	}
	for i := range contacts {
		if contacts[i].IsBilling {
			return &contacts[i], nil
		}
	}
	for i := range contacts {
		if strings.Contains(strings.ToLower(contacts[i].Role), "billing") {
			return &contacts[i], nil
		}
	}
	return &contacts[0], nil
}
