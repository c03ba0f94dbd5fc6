package dashboard

import (
	"sort"

	"github.com/calebo95/athlete-portal/internal/contracts"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/obligations"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Window sizes in days for the due-soon and contracts-ending buckets.
const (
	dueSoonDays         = 7
	contractsEndingDays = 60
)

// Summary is the read-side projection shown on the home screen.
type Summary struct {
	Overdue         []obligations.Obligation `json:"overdue"`
	DueSoon         []obligations.Obligation `json:"due_soon"`
	UnpaidInvoices  []invoices.Invoice       `json:"unpaid_invoices"`
	ContractsEnding []contracts.Contract     `json:"contracts_ending"`
}

// Aggregate buckets the workspace collections by date window. today comes
// from the caller so the projection stays deterministic. All window
// boundaries are inclusive: an obligation due today is due soon, not
// overdue.
func Aggregate(today shared.Date, obs []obligations.Obligation, invs []invoices.Invoice, cons []contracts.Contract) Summary {
	s := Summary{
		Overdue:         []obligations.Obligation{},
		DueSoon:         []obligations.Obligation{},
		UnpaidInvoices:  []invoices.Invoice{},
		ContractsEnding: []contracts.Contract{},
	}

	dueSoonEnd := today.AddDays(dueSoonDays)
	for _, o := range obs {
		if !o.Status.Open() || o.DueDate == nil {
			continue
		}
		due := *o.DueDate
		switch {
		case due.Before(today):
			s.Overdue = append(s.Overdue, o)
		case !dueSoonEnd.Before(due):
			s.DueSoon = append(s.DueSoon, o)
		}
	}
	sort.SliceStable(s.Overdue, func(i, j int) bool {
		return s.Overdue[i].DueDate.Before(*s.Overdue[j].DueDate)
	})
	sort.SliceStable(s.DueSoon, func(i, j int) bool {
		return s.DueSoon[i].DueDate.Before(*s.DueSoon[j].DueDate)
	})

	for _, inv := range invs {
		if inv.Status == invoices.StatusSent {
			s.UnpaidInvoices = append(s.UnpaidInvoices, inv)
		}
	}
	sort.SliceStable(s.UnpaidInvoices, func(i, j int) bool {
		a, b := s.UnpaidInvoices[i].SentDate, s.UnpaidInvoices[j].SentDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return b.Before(*a)
		}
	})

	endingEnd := today.AddDays(contractsEndingDays)
	for _, c := range cons {
		if c.EndDate == nil {
			continue
		}
		end := *c.EndDate
		if !end.Before(today) && !endingEnd.Before(end) {
			s.ContractsEnding = append(s.ContractsEnding, c)
		}
	}
	sort.SliceStable(s.ContractsEnding, func(i, j int) bool {
		return s.ContractsEnding[i].EndDate.Before(*s.ContractsEnding[j].EndDate)
	})

	return s
}
