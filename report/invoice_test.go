package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/calebo95/athlete-portal/internal/billing"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/shared"
	"github.com/calebo95/athlete-portal/internal/sponsors"
)

func strPtr(s string) *string { return &s }

func TestBuildInvoiceHTML(t *testing.T) {
	sent := shared.NewDate(2026, time.February, 10)
	data := &invoices.PDFData{
		Invoice: invoices.Invoice{
			ID:       uuid.New(),
			Number:   strPtr("INV-0042"),
			Amount:   1550,
			Status:   invoices.StatusSent,
			SentDate: &sent,
			Notes:    "Net 30.",
			Items: []invoices.LineItem{
				{LineNo: 1, Description: "Race day appearance", Quantity: 1, UnitPrice: 1000},
				{LineNo: 2, Description: "Social posts", Quantity: 2, UnitPrice: 275},
			},
		},
		Sponsor: &sponsors.Sponsor{Name: "Acme Gels"},
		Profile: &billing.Profile{
			BusinessName: "Jordan Runs LLC",
			City:         "Boulder",
			State:        "CO",
			PostalCode:   "80301",
			Email:        "billing@jordanruns.example",
		},
		BillTo: &sponsors.Contact{Company: "Acme Gels", Name: "Pat Vendor", Email: "ap@acme.example"},
	}

	html, err := BuildInvoiceHTML(data)
	require.NoError(t, err)

	require.Contains(t, html, "Jordan Runs LLC")
	require.Contains(t, html, "Boulder, CO, 80301")
	require.Contains(t, html, "Invoice #: INV-0042")
	require.Contains(t, html, "Date: 2026-02-10")
	require.Contains(t, html, "Status: sent")
	require.Contains(t, html, "Pat Vendor")
	require.Contains(t, html, "$275.00")
	require.Contains(t, html, "$550.00")
	require.Contains(t, html, "Total: $1,550.00")
	require.Contains(t, html, "Net 30.")

	// Items appear in line order.
	require.Less(t, strings.Index(html, "Race day appearance"), strings.Index(html, "Social posts"))
}

func TestBuildInvoiceHTMLFallbacks(t *testing.T) {
	data := &invoices.PDFData{
		Invoice: invoices.Invoice{
			ID:        uuid.New(),
			Status:    invoices.StatusDraft,
			CreatedAt: time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC),
			Items: []invoices.LineItem{
				{LineNo: 1, Description: "Consulting", Quantity: 1, UnitPrice: 100},
			},
			Amount: 100,
		},
	}

	html, err := BuildInvoiceHTML(data)
	require.NoError(t, err)
	require.Contains(t, html, "Billing")
	require.Contains(t, html, "Date: 2026-01-05")
	require.Contains(t, html, "—")
}

func TestBuildInvoiceHTMLEscapesUserText(t *testing.T) {
	data := &invoices.PDFData{
		Invoice: invoices.Invoice{
			ID:     uuid.New(),
			Status: invoices.StatusDraft,
			Items: []invoices.LineItem{
				{LineNo: 1, Description: "<script>alert(1)</script>", Quantity: 1, UnitPrice: 1},
			},
			Amount: 1,
		},
	}

	html, err := BuildInvoiceHTML(data)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
}
