package obligations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// Repository provides PostgreSQL backed persistence for obligations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const obligationColumns = `id, workspace_id, title, type, due_date, status, sponsor_id, contract_id, created_at, updated_at`

func scanObligation(row pgx.Row) (Obligation, error) {
	var o Obligation
	var due *time.Time
	err := row.Scan(&o.ID, &o.WorkspaceID, &o.Title, &o.Type, &due, &o.Status, &o.SponsorID, &o.ContractID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Obligation{}, err
	}
	o.DueDate = shared.DatePtr(due)
	return o, nil
}

// List returns workspace obligations ordered by due date with undated rows
// last. openOnly limits to pending and in_progress.
func (r *Repository) List(ctx context.Context, workspaceID uuid.UUID, openOnly bool) ([]Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE workspace_id = $1`
	if openOnly {
		query += ` AND status IN ('pending', 'in_progress')`
	}
	query += ` ORDER BY due_date ASC NULLS LAST, created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var obligations []Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, o)
	}
	return obligations, rows.Err()
}

// Get returns one obligation scoped to the workspace.
func (r *Repository) Get(ctx context.Context, workspaceID, id uuid.UUID) (Obligation, error) {
	o, err := scanObligation(r.pool.QueryRow(ctx, `SELECT `+obligationColumns+` FROM obligations
WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Obligation{}, ErrNotFound
	}
	return o, err
}

// Create inserts an obligation.
func (r *Repository) Create(ctx context.Context, o Obligation) (Obligation, error) {
	now := time.Now()
	_, err := r.pool.Exec(ctx, `INSERT INTO obligations (id, workspace_id, title, type, due_date, status, sponsor_id, contract_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		o.ID, o.WorkspaceID, o.Title, o.Type, shared.TimePtr(o.DueDate), o.Status, o.SponsorID, o.ContractID, now)
	if err != nil {
		return Obligation{}, err
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	return o, nil
}

// UpdateStatus transitions an obligation.
func (r *Repository) UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE obligations SET status = $1, updated_at = $2 WHERE workspace_id = $3 AND id = $4`,
		status, time.Now(), workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an obligation.
func (r *Repository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM obligations WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
