package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/calebo95/athlete-portal/internal/contracts"
	"github.com/calebo95/athlete-portal/internal/invoices"
	"github.com/calebo95/athlete-portal/internal/obligations"
	"github.com/calebo95/athlete-portal/internal/shared"
)

func datePtr(d shared.Date) *shared.Date { return &d }

func obligation(due *shared.Date, status obligations.Status) obligations.Obligation {
	return obligations.Obligation{
		ID:      uuid.New(),
		Title:   "deliverable",
		Type:    obligations.TypeContent,
		DueDate: due,
		Status:  status,
	}
}

func TestAggregateObligationBuckets(t *testing.T) {
	today := shared.NewDate(2026, time.March, 10)

	overdue := obligation(datePtr(today.AddDays(-1)), obligations.StatusPending)
	dueToday := obligation(datePtr(today), obligations.StatusInProgress)
	dueEdge := obligation(datePtr(today.AddDays(7)), obligations.StatusPending)
	dueLate := obligation(datePtr(today.AddDays(8)), obligations.StatusPending)
	doneOverdue := obligation(datePtr(today.AddDays(-5)), obligations.StatusDone)
	skipped := obligation(datePtr(today.AddDays(-5)), obligations.StatusSkipped)
	undated := obligation(nil, obligations.StatusPending)

	s := Aggregate(today, []obligations.Obligation{dueLate, dueEdge, overdue, dueToday, doneOverdue, skipped, undated}, nil, nil)

	require.Len(t, s.Overdue, 1)
	require.Equal(t, overdue.ID, s.Overdue[0].ID)

	require.Len(t, s.DueSoon, 2)
	require.Equal(t, dueToday.ID, s.DueSoon[0].ID)
	require.Equal(t, dueEdge.ID, s.DueSoon[1].ID)
}

func TestAggregateOverdueOrdering(t *testing.T) {
	today := shared.NewDate(2026, time.March, 10)
	older := obligation(datePtr(today.AddDays(-10)), obligations.StatusPending)
	newer := obligation(datePtr(today.AddDays(-2)), obligations.StatusPending)

	s := Aggregate(today, []obligations.Obligation{newer, older}, nil, nil)

	require.Len(t, s.Overdue, 2)
	require.Equal(t, older.ID, s.Overdue[0].ID)
	require.Equal(t, newer.ID, s.Overdue[1].ID)
}

func TestAggregateUnpaidInvoices(t *testing.T) {
	today := shared.NewDate(2026, time.March, 10)
	recent := invoices.Invoice{ID: uuid.New(), Status: invoices.StatusSent, SentDate: datePtr(today.AddDays(-3))}
	old := invoices.Invoice{ID: uuid.New(), Status: invoices.StatusSent, SentDate: datePtr(today.AddDays(-40))}
	paid := invoices.Invoice{ID: uuid.New(), Status: invoices.StatusPaid, SentDate: datePtr(today.AddDays(-1))}
	draft := invoices.Invoice{ID: uuid.New(), Status: invoices.StatusDraft}

	s := Aggregate(today, nil, []invoices.Invoice{old, paid, recent, draft}, nil)

	require.Len(t, s.UnpaidInvoices, 2)
	require.Equal(t, recent.ID, s.UnpaidInvoices[0].ID)
	require.Equal(t, old.ID, s.UnpaidInvoices[1].ID)
}

func TestAggregateContractsEnding(t *testing.T) {
	today := shared.NewDate(2026, time.March, 10)
	endsToday := contracts.Contract{ID: uuid.New(), EndDate: datePtr(today)}
	endsEdge := contracts.Contract{ID: uuid.New(), EndDate: datePtr(today.AddDays(60))}
	endsLate := contracts.Contract{ID: uuid.New(), EndDate: datePtr(today.AddDays(61))}
	ended := contracts.Contract{ID: uuid.New(), EndDate: datePtr(today.AddDays(-1))}
	openEnded := contracts.Contract{ID: uuid.New()}

	s := Aggregate(today, nil, nil, []contracts.Contract{endsEdge, ended, endsToday, endsLate, openEnded})

	require.Len(t, s.ContractsEnding, 2)
	require.Equal(t, endsToday.ID, s.ContractsEnding[0].ID)
	require.Equal(t, endsEdge.ID, s.ContractsEnding[1].ID)
}

func TestAggregateIdempotent(t *testing.T) {
	today := shared.NewDate(2026, time.March, 10)
	obs := []obligations.Obligation{
		obligation(datePtr(today.AddDays(-2)), obligations.StatusPending),
		obligation(datePtr(today.AddDays(3)), obligations.StatusInProgress),
		obligation(datePtr(today.AddDays(3)), obligations.StatusPending),
	}
	invs := []invoices.Invoice{
		{ID: uuid.New(), Status: invoices.StatusSent, SentDate: datePtr(today.AddDays(-5))},
		{ID: uuid.New(), Status: invoices.StatusSent, SentDate: datePtr(today.AddDays(-5))},
	}
	cons := []contracts.Contract{
		{ID: uuid.New(), EndDate: datePtr(today.AddDays(30))},
	}

	first, err := json.Marshal(Aggregate(today, obs, invs, cons))
	require.NoError(t, err)
	second, err := json.Marshal(Aggregate(today, obs, invs, cons))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAggregateEmptyInput(t *testing.T) {
	s := Aggregate(shared.NewDate(2026, time.March, 10), nil, nil, nil)
	require.NotNil(t, s.Overdue)
	require.NotNil(t, s.DueSoon)
	require.NotNil(t, s.UnpaidInvoices)
	require.NotNil(t, s.ContractsEnding)
	require.Empty(t, s.Overdue)
}
