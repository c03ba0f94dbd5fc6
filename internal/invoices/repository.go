package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebo95/athlete-portal/internal/platform/db"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Repository provides PostgreSQL backed persistence for invoices.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = `id, workspace_id, invoice_number, sponsor_id, contract_id, amount, status,
sent_date, paid_date, COALESCE(notes, ''), reminder_sent_at, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var sentDate, paidDate *time.Time
	err := row.Scan(&inv.ID, &inv.WorkspaceID, &inv.Number, &inv.SponsorID, &inv.ContractID,
		&inv.Amount, &inv.Status, &sentDate, &paidDate, &inv.Notes,
		&inv.ReminderSentAt, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.SentDate = shared.DatePtr(sentDate)
	inv.PaidDate = shared.DatePtr(paidDate)
	return &inv, nil
}

// Get returns one invoice with its items, scoped to the workspace.
func (r *Repository) Get(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// List returns workspace invoices ordered newest first, each with its items
// ordered by line number.
func (r *Repository) List(ctx context.Context, workspaceID uuid.UUID, req ListRequest) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE workspace_id = $1`
	args := []any{workspaceID}
	if len(req.Statuses) > 0 {
		statuses := make([]string, len(req.Statuses))
		for i, s := range req.Statuses {
			statuses[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, statuses)
	}
	query += ` ORDER BY created_at DESC`
	if req.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, req.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range invoices {
		items, err := r.listItems(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
	}
	return invoices, nil
}

func (r *Repository) listItems(ctx context.Context, invoiceID uuid.UUID) ([]LineItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, invoice_id, line_no, description, quantity, unit_price
FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.LineNo, &it.Description, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create persists the header and its items in one transaction.
func (r *Repository) Create(ctx context.Context, inv *Invoice) error {
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO invoices (id, workspace_id, invoice_number, sponsor_id, contract_id,
amount, status, sent_date, paid_date, notes, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $12)`,
			inv.ID, inv.WorkspaceID, inv.Number, inv.SponsorID, inv.ContractID,
			inv.Amount, inv.Status, shared.TimePtr(inv.SentDate), shared.TimePtr(inv.PaidDate),
			inv.Notes, inv.CreatedBy, now)
		if err != nil {
			return err
		}
		return insertItems(ctx, tx, inv.Items)
	})
	return mapWriteError(err)
}

// Replace updates the header and swaps the full line-item set atomically.
// The old set survives when anything in the transaction fails.
func (r *Repository) Replace(ctx context.Context, inv *Invoice) error {
	now := time.Now()
	inv.UpdatedAt = now
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE invoices SET invoice_number = $1, sponsor_id = $2, contract_id = $3,
amount = $4, status = $5, sent_date = $6, paid_date = $7, notes = NULLIF($8, ''), updated_at = $9
WHERE workspace_id = $10 AND id = $11`,
			inv.Number, inv.SponsorID, inv.ContractID,
			inv.Amount, inv.Status, shared.TimePtr(inv.SentDate), shared.TimePtr(inv.PaidDate),
			inv.Notes, now, inv.WorkspaceID, inv.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return err
		}
		return insertItems(ctx, tx, inv.Items)
	})
	return mapWriteError(err)
}

// UpdateStatus persists the header fields the lifecycle engine derives.
func (r *Repository) UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status, sentDate, paidDate *shared.Date) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status = $1, sent_date = $2, paid_date = $3, updated_at = $4
WHERE workspace_id = $5 AND id = $6`,
		status, shared.TimePtr(sentDate), shared.TimePtr(paidDate), time.Now(), workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, items []LineItem) error {
	for _, it := range items {
		_, err := tx.Exec(ctx, `INSERT INTO invoice_items (id, invoice_id, line_no, description, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5, $6)`, it.ID, it.InvoiceID, it.LineNo, it.Description, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
	}
	return nil
}

// mapWriteError converts a unique violation on the invoice number index into
// the domain error.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateNumber
	}
	return err
}
