package invoices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calebo95/athlete-portal/internal/shared"
)

var lifecycleToday = shared.NewDate(2025, time.August, 31)

func datePtr(d shared.Date) *shared.Date { return &d }

func TestApplyDraftClearsDates(t *testing.T) {
	sent := shared.NewDate(2025, time.July, 1)
	paid := shared.NewDate(2025, time.July, 15)
	inv := &Invoice{Status: StatusPaid, SentDate: &sent, PaidDate: &paid}

	require.NoError(t, Lifecycle{}.Apply(inv, StatusDraft, lifecycleToday))
	require.Equal(t, StatusDraft, inv.Status)
	require.Nil(t, inv.SentDate)
	require.Nil(t, inv.PaidDate)
}

func TestApplySentBackfillsOnlyWhenEmpty(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusSent, lifecycleToday))
	require.Equal(t, StatusSent, inv.Status)
	require.NotNil(t, inv.SentDate)
	require.True(t, inv.SentDate.Equal(lifecycleToday))
	require.Nil(t, inv.PaidDate)

	// an existing sent date survives a repeat transition
	older := shared.NewDate(2025, time.June, 1)
	inv = &Invoice{Status: StatusSent, SentDate: &older}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusSent, lifecycleToday))
	require.True(t, inv.SentDate.Equal(older))
}

func TestApplySentClearsPaidDate(t *testing.T) {
	sent := shared.NewDate(2025, time.June, 1)
	paid := shared.NewDate(2025, time.June, 20)
	inv := &Invoice{Status: StatusPaid, SentDate: &sent, PaidDate: &paid}

	require.NoError(t, Lifecycle{}.Apply(inv, StatusSent, lifecycleToday))
	require.True(t, inv.SentDate.Equal(sent))
	require.Nil(t, inv.PaidDate)
}

func TestApplyPaidBackfillsBothDates(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusPaid, lifecycleToday))
	require.Equal(t, StatusPaid, inv.Status)
	require.NotNil(t, inv.SentDate)
	require.NotNil(t, inv.PaidDate)
	require.True(t, inv.SentDate.Equal(lifecycleToday))
	require.True(t, inv.PaidDate.Equal(lifecycleToday))
	require.True(t, inv.SentDate.Equal(*inv.PaidDate))
}

func TestApplyPaidKeepsExistingSentDate(t *testing.T) {
	sent := shared.NewDate(2025, time.July, 1)
	inv := &Invoice{Status: StatusSent, SentDate: &sent}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusPaid, lifecycleToday))
	require.True(t, inv.SentDate.Equal(sent))
	require.True(t, inv.PaidDate.Equal(lifecycleToday))
}

func TestApplyVoidKeepsDates(t *testing.T) {
	sent := shared.NewDate(2025, time.July, 1)
	inv := &Invoice{Status: StatusSent, SentDate: &sent}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusVoid, lifecycleToday))
	require.Equal(t, StatusVoid, inv.Status)
	require.True(t, inv.SentDate.Equal(sent))
	require.Nil(t, inv.PaidDate)
}

func TestApplyVoidReopenDefaultAllowed(t *testing.T) {
	inv := &Invoice{Status: StatusVoid}
	require.NoError(t, Lifecycle{}.Apply(inv, StatusDraft, lifecycleToday))
	require.Equal(t, StatusDraft, inv.Status)
}

func TestApplyVoidReopenRestricted(t *testing.T) {
	inv := &Invoice{Status: StatusVoid, SentDate: datePtr(shared.NewDate(2025, time.July, 1))}
	err := Lifecycle{RestrictVoid: true}.Apply(inv, StatusSent, lifecycleToday)
	require.ErrorIs(t, err, ErrVoidLocked)
	require.Equal(t, StatusVoid, inv.Status)

	// void to void is still a no-op, not an error
	require.NoError(t, Lifecycle{RestrictVoid: true}.Apply(inv, StatusVoid, lifecycleToday))
}

func TestApplyRejectsUnknownStatus(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}
	require.ErrorIs(t, Lifecycle{}.Apply(inv, Status("archived"), lifecycleToday), ErrInvalidStatus)
}
