package invoices

import "github.com/calebo95/athlete-portal/internal/shared"

// Lifecycle governs the date side effects of status changes. Both the edit
// form and the quick list actions funnel through Apply, so the date stored for
// a given status on a given day is identical on either path.
//
// Any status is directly settable. When RestrictVoid is set, a voided invoice
// rejects transitions to any other status.
type Lifecycle struct {
	RestrictVoid bool
}

// Apply sets inv.Status to target and adjusts the derived date fields:
//
//	draft  clears sent_date and paid_date
//	sent   backfills sent_date with today when empty, clears paid_date
//	paid   backfills sent_date and paid_date with today when empty
//	void   leaves both dates untouched
func (l Lifecycle) Apply(inv *Invoice, target Status, today shared.Date) error {
	if !ValidStatus(target) {
		return ErrInvalidStatus
	}
	if l.RestrictVoid && inv.Status == StatusVoid && target != StatusVoid {
		return ErrVoidLocked
	}

	switch target {
	case StatusDraft:
		inv.SentDate = nil
		inv.PaidDate = nil
	case StatusSent:
		if inv.SentDate == nil {
			d := today
			inv.SentDate = &d
		}
		inv.PaidDate = nil
	case StatusPaid:
		if inv.SentDate == nil {
			d := today
			inv.SentDate = &d
		}
		if inv.PaidDate == nil {
			d := today
			inv.PaidDate = &d
		}
	case StatusVoid:
		// dates are kept for the record
	}

	inv.Status = target
	return nil
}
