package sponsors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for sponsors and contacts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListSponsors returns workspace sponsors ordered by name.
func (r *Repository) ListSponsors(ctx context.Context, workspaceID uuid.UUID) ([]Sponsor, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, workspace_id, name, COALESCE(notes, ''), created_at, updated_at
FROM sponsors WHERE workspace_id = $1 ORDER BY name`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sponsors []Sponsor
	for rows.Next() {
		var sp Sponsor
		if err := rows.Scan(&sp.ID, &sp.WorkspaceID, &sp.Name, &sp.Notes, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors, rows.Err()
}

// GetSponsor returns one sponsor scoped to the workspace.
func (r *Repository) GetSponsor(ctx context.Context, workspaceID, id uuid.UUID) (Sponsor, error) {
	var sp Sponsor
	err := r.pool.QueryRow(ctx, `SELECT id, workspace_id, name, COALESCE(notes, ''), created_at, updated_at
FROM sponsors WHERE workspace_id = $1 AND id = $2`, workspaceID, id).
		Scan(&sp.ID, &sp.WorkspaceID, &sp.Name, &sp.Notes, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sponsor{}, ErrNotFound
	}
	return sp, err
}

// CreateSponsor inserts a sponsor.
func (r *Repository) CreateSponsor(ctx context.Context, sp Sponsor) (Sponsor, error) {
	now := time.Now()
	_, err := r.pool.Exec(ctx, `INSERT INTO sponsors (id, workspace_id, name, notes, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $5)`, sp.ID, sp.WorkspaceID, sp.Name, sp.Notes, now)
	if err != nil {
		return Sponsor{}, err
	}
	sp.CreatedAt = now
	sp.UpdatedAt = now
	return sp, nil
}

// UpdateSponsor saves sponsor changes.
func (r *Repository) UpdateSponsor(ctx context.Context, sp Sponsor) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sponsors SET name = $1, notes = NULLIF($2, ''), updated_at = $3
WHERE workspace_id = $4 AND id = $5`, sp.Name, sp.Notes, time.Now(), sp.WorkspaceID, sp.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSponsor removes a sponsor.
func (r *Repository) DeleteSponsor(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sponsors WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContacts returns contacts ordered by creation time, oldest first.
func (r *Repository) ListContacts(ctx context.Context, workspaceID uuid.UUID, sponsorID *uuid.UUID) ([]Contact, error) {
	query := `SELECT id, workspace_id, sponsor_id, name, COALESCE(company, ''), COALESCE(email, ''),
COALESCE(phone, ''), COALESCE(role, ''), is_billing, created_at, updated_at
FROM contacts WHERE workspace_id = $1`
	args := []any{workspaceID}
	if sponsorID != nil {
		query += ` AND sponsor_id = $2`
		args = append(args, *sponsorID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.SponsorID, &c.Name, &c.Company, &c.Email,
			&c.Phone, &c.Role, &c.IsBilling, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CreateContact inserts a contact.
func (r *Repository) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	now := time.Now()
	_, err := r.pool.Exec(ctx, `INSERT INTO contacts (id, workspace_id, sponsor_id, name, company, email, phone, role, is_billing, created_at, updated_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $10)`,
		c.ID, c.WorkspaceID, c.SponsorID, c.Name, c.Company, c.Email, c.Phone, c.Role, c.IsBilling, now)
	if err != nil {
		return Contact{}, err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// UpdateContact saves contact changes.
func (r *Repository) UpdateContact(ctx context.Context, c Contact) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contacts SET sponsor_id = $1, name = $2, company = NULLIF($3, ''),
email = NULLIF($4, ''), phone = NULLIF($5, ''), role = NULLIF($6, ''), is_billing = $7, updated_at = $8
WHERE workspace_id = $9 AND id = $10`,
		c.SponsorID, c.Name, c.Company, c.Email, c.Phone, c.Role, c.IsBilling, time.Now(), c.WorkspaceID, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact.
func (r *Repository) DeleteContact(ctx context.Context, workspaceID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
