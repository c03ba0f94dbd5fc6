package sponsors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memorySponsorRepo struct {
	sponsors map[uuid.UUID]Sponsor
	contacts []Contact
}

func newMemorySponsorRepo() *memorySponsorRepo {
	return &memorySponsorRepo{sponsors: make(map[uuid.UUID]Sponsor)}
}

func (r *memorySponsorRepo) ListSponsors(ctx context.Context, workspaceID uuid.UUID) ([]Sponsor, error) {
	var out []Sponsor
	for _, sp := range r.sponsors {
		if sp.WorkspaceID == workspaceID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (r *memorySponsorRepo) GetSponsor(ctx context.Context, workspaceID, id uuid.UUID) (Sponsor, error) {
	sp, ok := r.sponsors[id]
	if !ok || sp.WorkspaceID != workspaceID {
		return Sponsor{}, ErrNotFound
	}
	return sp, nil
}

func (r *memorySponsorRepo) CreateSponsor(ctx context.Context, sp Sponsor) (Sponsor, error) {
	r.sponsors[sp.ID] = sp
	return sp, nil
}

func (r *memorySponsorRepo) UpdateSponsor(ctx context.Context, sp Sponsor) error {
	if _, ok := r.sponsors[sp.ID]; !ok {
		return ErrNotFound
	}
	r.sponsors[sp.ID] = sp
	return nil
}

func (r *memorySponsorRepo) DeleteSponsor(ctx context.Context, workspaceID, id uuid.UUID) error {
	delete(r.sponsors, id)
	return nil
}

func (r *memorySponsorRepo) ListContacts(ctx context.Context, workspaceID uuid.UUID, sponsorID *uuid.UUID) ([]Contact, error) {
	var out []Contact
	for _, c := range r.contacts {
		if c.WorkspaceID != workspaceID {
			continue
		}
		if sponsorID != nil && (c.SponsorID == nil || *c.SponsorID != *sponsorID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memorySponsorRepo) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	r.contacts = append(r.contacts, c)
	return c, nil
}

func (r *memorySponsorRepo) UpdateContact(ctx context.Context, c Contact) error { return nil }

func (r *memorySponsorRepo) DeleteContact(ctx context.Context, workspaceID, id uuid.UUID) error {
	return nil
}

func TestCreateSponsorRequiresName(t *testing.T) {
	svc := NewService(newMemorySponsorRepo())
	_, err := svc.Create(context.Background(), Sponsor{WorkspaceID: uuid.New(), Name: "   "})
	require.Error(t, err)
}

func TestBillingContactFallbackChain(t *testing.T) {
	ws := uuid.New()
	sponsorID := uuid.New()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	contact := func(name, role string, isBilling bool, created time.Time) Contact {
		return Contact{
			ID:          uuid.New(),
			WorkspaceID: ws,
			SponsorID:   &sponsorID,
			Name:        name,
			Role:        role,
			IsBilling:   isBilling,
			CreatedAt:   created,
		}
	}

	t.Run("prefers explicit billing flag", func(t *testing.T) {
		repo := newMemorySponsorRepo()
		repo.contacts = []Contact{
			contact("First", "Manager", false, base),
			contact("Accounts", "Billing Lead", false, base.Add(time.Hour)),
			contact("Flagged", "", true, base.Add(2*time.Hour)),
		}
		got, err := NewService(repo).BillingContact(context.Background(), ws, sponsorID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "Flagged", got.Name)
	})

	t.Run("falls back to billing role", func(t *testing.T) {
		repo := newMemorySponsorRepo()
		repo.contacts = []Contact{
			contact("First", "Manager", false, base),
			contact("Accounts", "BILLING lead", false, base.Add(time.Hour)),
		}
		got, err := NewService(repo).BillingContact(context.Background(), ws, sponsorID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "Accounts", got.Name)
	})

	t.Run("falls back to earliest contact", func(t *testing.T) {
		repo := newMemorySponsorRepo()
		repo.contacts = []Contact{
			contact("First", "Manager", false, base),
			contact("Second", "PR", false, base.Add(time.Hour)),
		}
		got, err := NewService(repo).BillingContact(context.Background(), ws, sponsorID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "First", got.Name)
	})

	t.Run("nil when no contacts", func(t *testing.T) {
		got, err := NewService(newMemorySponsorRepo()).BillingContact(context.Background(), ws, sponsorID)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}
