package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for billing profiles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileColumns = `id, workspace_id, COALESCE(business_name, ''), COALESCE(email, ''), COALESCE(phone, ''),
COALESCE(website, ''), COALESCE(address_line1, ''), COALESCE(address_line2, ''), COALESCE(city, ''),
COALESCE(state, ''), COALESCE(postal_code, ''), COALESCE(country, ''), COALESCE(payment_method, ''),
COALESCE(bank_name, ''), COALESCE(account_name, ''), COALESCE(account_number_last4, ''),
COALESCE(routing_number, ''), COALESCE(payment_instructions, ''), created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.BusinessName, &p.Email, &p.Phone,
		&p.Website, &p.AddressLine1, &p.AddressLine2, &p.City,
		&p.State, &p.PostalCode, &p.Country, &p.PaymentMethod,
		&p.BankName, &p.AccountName, &p.AccountNumberLast4,
		&p.RoutingNumber, &p.PaymentInstructions, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile returns the workspace billing profile.
func (r *Repository) GetProfile(ctx context.Context, workspaceID uuid.UUID) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM workspace_billing_profiles WHERE workspace_id = $1`, workspaceID)
	return scanProfile(row)
}

// UpsertProfile inserts or replaces the workspace billing profile.
func (r *Repository) UpsertProfile(ctx context.Context, p Profile) (*Profile, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `INSERT INTO workspace_billing_profiles (
	id, workspace_id, business_name, email, phone, website,
	address_line1, address_line2, city, state, postal_code, country,
	payment_method, bank_name, account_name, account_number_last4,
	routing_number, payment_instructions, created_at, updated_at
) VALUES (
	$1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
	NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''),
	NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''), NULLIF($16, ''),
	NULLIF($17, ''), NULLIF($18, ''), $19, $19
)
ON CONFLICT (workspace_id) DO UPDATE SET
	business_name = EXCLUDED.business_name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	website = EXCLUDED.website,
	address_line1 = EXCLUDED.address_line1,
	address_line2 = EXCLUDED.address_line2,
	city = EXCLUDED.city,
	state = EXCLUDED.state,
	postal_code = EXCLUDED.postal_code,
	country = EXCLUDED.country,
	payment_method = EXCLUDED.payment_method,
	bank_name = EXCLUDED.bank_name,
	account_name = EXCLUDED.account_name,
	account_number_last4 = EXCLUDED.account_number_last4,
	routing_number = EXCLUDED.routing_number,
	payment_instructions = EXCLUDED.payment_instructions,
	updated_at = EXCLUDED.updated_at
RETURNING `+profileColumns,
		uuid.New(), p.WorkspaceID, p.BusinessName, p.Email, p.Phone, p.Website,
		p.AddressLine1, p.AddressLine2, p.City, p.State, p.PostalCode, p.Country,
		p.PaymentMethod, p.BankName, p.AccountName, p.AccountNumberLast4,
		p.RoutingNumber, p.PaymentInstructions, now)
	return scanProfile(row)
}
