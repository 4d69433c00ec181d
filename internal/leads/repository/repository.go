package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is a lead row joined with its property address. Status is stored as
// the canonical label text and parsed by the domain package.
type Lead struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string

	PropertyType    string
	IsPropertyOwner bool
	AddressID       uuid.UUID

	MonthlyBillRange  string
	BestTimeToContact string
	Notes             *string

	Status      string
	CustomerID  *uuid.UUID
	CreatedAt   time.Time
	ContactedAt *time.Time
	ConvertedAt *time.Time

	// Address columns joined from the addresses table.
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

type CreateLeadParams struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string

	PropertyType    string
	IsPropertyOwner bool
	AddressID       uuid.UUID

	MonthlyBillRange  string
	BestTimeToContact string
	Notes             *string

	Status string
}

const leadColumns = `
	l.id, l.first_name, l.last_name, l.email, l.phone_number,
	l.property_type, l.is_property_owner, l.address_id,
	l.monthly_bill_range, l.best_time_to_contact, l.notes,
	l.status, l.customer_id, l.created_at, l.contacted_at, l.converted_at,
	a.street, a.city, a.state, a.zip_code, a.country
`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.PhoneNumber,
		&lead.PropertyType, &lead.IsPropertyOwner, &lead.AddressID,
		&lead.MonthlyBillRange, &lead.BestTimeToContact, &lead.Notes,
		&lead.Status, &lead.CustomerID, &lead.CreatedAt, &lead.ContactedAt, &lead.ConvertedAt,
		&lead.Street, &lead.City, &lead.State, &lead.ZipCode, &lead.Country,
	)
	return lead, err
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			first_name, last_name, email, phone_number,
			property_type, is_property_owner, address_id,
			monthly_bill_range, best_time_to_contact, notes, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		params.FirstName, params.LastName, params.Email, params.PhoneNumber,
		params.PropertyType, params.IsPropertyOwner, params.AddressID,
		params.MonthlyBillRange, params.BestTimeToContact, params.Notes, params.Status,
	).Scan(&id)
	if err != nil {
		return Lead{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads l
		JOIN addresses a ON a.id = l.address_id
		WHERE l.id = $1
	`, id)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads l
		JOIN addresses a ON a.id = l.address_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// Update persists the mutable lifecycle columns of a lead and reports how
// many rows were touched.
func (r *Repository) Update(ctx context.Context, lead Lead) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET status = $2, notes = $3, customer_id = $4, contacted_at = $5, converted_at = $6
		WHERE id = $1
	`, lead.ID, lead.Status, lead.Notes, lead.CustomerID, lead.ContactedAt, lead.ConvertedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a lead and reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
