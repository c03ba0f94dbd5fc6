package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Repository provides PostgreSQL backed persistence for contracts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contractColumns = `id, workspace_id, sponsor_id, start_date, end_date, base_pay, COALESCE(notes, ''), created_at, updated_at`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	var start, end *time.Time
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.SponsorID, &start, &end, &c.BasePay, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Contract{}, err
	}
	c.StartDate = shared.DatePtr(start)
	c.EndDate = shared.DatePtr(end)
	return c, nil
}

// List returns workspace contracts, soonest-ending first with open-ended
// contracts last, then newest created.
func (r *Repository) List(ctx context.Context, workspaceID uuid.UUID) ([]Contract, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contractColumns+` FROM contracts
WHERE workspace_id = $1 ORDER BY end_date ASC NULLS LAST, created_at DESC`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var contracts []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// Get returns one contract scoped to the workspace.
func (r *Repository) Get(ctx context.Context, workspaceID, id uuid.UUID) (Contract, error) {
	c, err := scanContract(r.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts
WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	return c, err
}

// Create inserts a contract.
func (r *Repository) Create(ctx context.Context, c Contract) (Contract, error) {
	now := time.Now()
	_, err := r.pool.Exec(ctx, `INSERT INTO contracts (id, workspace_id, sponsor_id, start_date, end_date, base_pay, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $8)`,
		c.ID, c.WorkspaceID, c.SponsorID, shared.TimePtr(c.StartDate), shared.TimePtr(c.EndDate), c.BasePay, c.Notes, now)
	if err != nil {
		return Contract{}, err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// Update saves contract changes.
func (r *Repository) Update(ctx context.Context, c Contract) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contracts SET sponsor_id = $1, start_date = $2, end_date = $3,
base_pay = $4, notes = NULLIF($5, ''), updated_at = $6 WHERE workspace_id = $7 AND id = $8`,
		c.SponsorID, shared.TimePtr(c.StartDate), shared.TimePtr(c.EndDate), c.BasePay, c.Notes, time.Now(), c.WorkspaceID, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a contract.
func (r *Repository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
