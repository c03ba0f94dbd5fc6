package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Repository provides PostgreSQL backed selection and marking for the sweep.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SelectStale returns sent, unpaid, unreminded invoices whose sent_date is
// on or before cutoff, oldest first, capped at limit. The sweep runs across
// all workspaces; scoping back to owners happens through created_by.
func (r *Repository) SelectStale(ctx context.Context, cutoff shared.Date, limit int) ([]StaleInvoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT i.id, i.invoice_number, i.amount, i.sent_date, s.name, i.created_by
FROM invoices i
LEFT JOIN sponsors s ON s.id = i.sponsor_id
WHERE i.status = 'sent'
  AND i.paid_date IS NULL
  AND i.reminder_sent_at IS NULL
  AND i.sent_date <= $1
ORDER BY i.sent_date
LIMIT $2`, cutoff.Time(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stale []StaleInvoice
	for rows.Next() {
		var inv StaleInvoice
		var sent time.Time
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.Amount, &sent, &inv.SponsorName, &inv.CreatedBy); err != nil {
			return nil, err
		}
		inv.SentDate = shared.DateOf(sent)
		stale = append(stale, inv)
	}
	return stale, rows.Err()
}

// MarkReminded stamps reminder_sent_at on the given invoices.
func (r *Repository) MarkReminded(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE invoices SET reminder_sent_at = $1, updated_at = $1
WHERE id = ANY($2) AND reminder_sent_at IS NULL`, at, ids)
	return err
}

// OwnerRepository resolves invoice owners to their account email.
//
// OwnerRepository implements OwnerDirectory.
type OwnerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository constructs an owner directory backed by the users table.
func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

// Emails returns the address for each known owner. Owners without a row or
// with an empty email are simply absent from the result.
func (r *OwnerRepository) Emails(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, email FROM users WHERE id = ANY($1) AND email <> ''`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, err
		}
		out[id] = email
	}
	return out, rows.Err()
}
