package reminders

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/mailer"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// RepositoryPort defines data access for the reminder sweep.
type RepositoryPort interface {
	// SelectStale returns reminder candidates with sent_date on or before
	// cutoff, capped at limit rows.
	SelectStale(ctx context.Context, cutoff shared.Date, limit int) ([]StaleInvoice, error)
	// MarkReminded stamps reminder_sent_at on the given invoices.
	MarkReminded(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// OwnerDirectory resolves notification addresses for invoice owners.
// Owners absent from the result map have no deliverable address and their
// whole group is skipped.
type OwnerDirectory interface {
	Emails(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

// Locker serializes sweeps so overlapping schedules cannot double-send.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Service runs the invoice reminder sweep.
type Service struct {
	logger *slog.Logger
	repo   RepositoryPort
	owners OwnerDirectory
	mail   mailer.Mailer
	locker Locker
}

// NewService builds a Service instance. locker may be nil when the caller
// guarantees non-overlapping invocations itself.
func NewService(logger *slog.Logger, repo RepositoryPort, owners OwnerDirectory, mail mailer.Mailer, locker Locker) *Service {
	return &Service{logger: logger, repo: repo, owners: owners, mail: mail, locker: locker}
}

// Run performs one sweep at the given wall-clock time. Zero candidates is a
// valid, successful no-op, as is a disabled mailer: nothing is selected or
// marked, so the invoices stay eligible once delivery is configured. A
// delivery failure for one owner leaves that owner's invoices eligible for
// the next run and does not block other owners.
func (s *Service) Run(ctx context.Context, now time.Time) (Report, error) {
	if !s.mail.IsEnabled() {
		s.logger.Warn("mail delivery disabled, skipping reminder sweep")
		return Report{}, nil
	}
	if s.locker != nil {
		ok, err := s.locker.Acquire(ctx)
		if err != nil {
			return Report{}, fmt.Errorf("reminders: acquire run lease: %w", err)
		}
		if !ok {
			return Report{}, ErrRunInProgress
		}
		defer func() {
			if err := s.locker.Release(ctx); err != nil {
				s.logger.Error("release run lease", slog.Any("error", err))
			}
		}()
	}
	return s.sweep(ctx, now)
}

func (s *Service) sweep(ctx context.Context, now time.Time) (Report, error) {
	cutoff := shared.DateOf(now).AddDays(-StaleAfterDays)
	stale, err := s.repo.SelectStale(ctx, cutoff, BatchLimit)
	if err != nil {
		return Report{}, fmt.Errorf("reminders: select stale invoices: %w", err)
	}
	report := Report{Processed: len(stale)}
	if len(stale) == 0 {
		return report, nil
	}

	groups := make(map[uuid.UUID][]StaleInvoice)
	for _, inv := range stale {
		if inv.CreatedBy == nil {
			s.logger.Warn("skipping ownerless invoice", slog.String("invoice_id", inv.ID.String()))
			continue
		}
		groups[*inv.CreatedBy] = append(groups[*inv.CreatedBy], inv)
	}

	owners := make([]uuid.UUID, 0, len(groups))
	for owner := range groups {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].String() < owners[j].String() })

	emails, err := s.owners.Emails(ctx, owners)
	if err != nil {
		return report, fmt.Errorf("reminders: resolve owners: %w", err)
	}

	for _, owner := range owners {
		group := groups[owner]
		to, ok := emails[owner]
		if !ok || to == "" {
			s.logger.Warn("skipping owner without address", slog.String("owner_id", owner.String()))
			continue
		}
		subject, body := composeReminder(group)
		if err := s.mail.Send(to, subject, body); err != nil {
			s.logger.Error("reminder delivery failed",
				slog.String("owner_id", owner.String()),
				slog.Int("invoices", len(group)),
				slog.Any("error", err))
			continue
		}
		report.OwnersNotified++

		ids := make([]uuid.UUID, len(group))
		for i, inv := range group {
			ids[i] = inv.ID
		}
		if err := s.repo.MarkReminded(ctx, ids, now); err != nil {
			s.logger.Error("marking reminded invoices failed",
				slog.String("owner_id", owner.String()),
				slog.Any("error", err))
			continue
		}
		report.InvoicesMarked += len(ids)
	}
	return report, nil
}

func composeReminder(group []StaleInvoice) (subject, body string) {
	subject = fmt.Sprintf("Payment reminder: %d unpaid invoice(s) over %d days old", len(group), StaleAfterDays)

	var b strings.Builder
	b.WriteString("<p>The following invoices were sent more than ")
	fmt.Fprintf(&b, "%d", StaleAfterDays)
	b.WriteString(" days ago and are still unpaid:</p>\n<ul>\n")
	for _, inv := range group {
		sponsor := "Unknown sponsor"
		if inv.SponsorName != nil && *inv.SponsorName != "" {
			sponsor = *inv.SponsorName
		}
		label := sponsor
		if inv.Number != nil && *inv.Number != "" {
			label = fmt.Sprintf("%s (#%s)", sponsor, *inv.Number)
		}
		fmt.Fprintf(&b, "<li>%s: %s, sent %s</li>\n",
			html.EscapeString(label), shared.FormatMoney(inv.Amount), inv.SentDate.String())
	}
	b.WriteString("</ul>\n<p>Consider following up with the sponsor.</p>\n")
	return subject, b.String()
}
