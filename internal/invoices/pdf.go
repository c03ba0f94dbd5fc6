package invoices

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/billing"
	"github.com/calebo95/athlete-portal/internal/sponsors"
)

// PDFData is a fully-resolved invoice handed to the report renderer: the
// header, items sorted by line number, and the resolved sponsor, workspace
// billing profile and bill-to contact. Layout is the renderer's concern.
type PDFData struct {
	Invoice Invoice
	Sponsor *sponsors.Sponsor
	Profile *billing.Profile
	BillTo  *sponsors.Contact
}

// ResolveForPDF assembles everything the invoice document needs. Only the
// invoice fetch is fatal; sponsor, profile and contact lookups degrade to nil
// so a half-configured workspace can still print.
func (s *Service) ResolveForPDF(ctx context.Context, workspaceID, id uuid.UUID) (*PDFData, error) {
	inv, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	data := &PDFData{Invoice: *inv}

	if inv.SponsorID != nil && s.sponsors != nil {
		if sp, err := s.sponsors.Get(ctx, workspaceID, *inv.SponsorID); err == nil {
			data.Sponsor = &sp
		}
		if contact, err := s.sponsors.BillingContact(ctx, workspaceID, *inv.SponsorID); err == nil {
			data.BillTo = contact
		}
	}
	if s.profiles != nil {
		if profile, err := s.profiles.Get(ctx, workspaceID); err == nil {
			data.Profile = profile
		}
	}
	return data, nil
}
