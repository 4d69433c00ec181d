package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("customer not found")

// StatusProspect is the initial status for customers created from a lead
// conversion; they become active once an installation contract is signed.
const StatusProspect = "Prospect"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Customer struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Status           string
	ContactAddressID uuid.UUID
	RegisteredAt     time.Time
}

type CreateCustomerParams struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Status           string
	ContactAddressID uuid.UUID
	RegisteredAt     time.Time
}

func (r *Repository) Create(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	var customer Customer
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone, status, contact_address_id, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, first_name, last_name, email, phone, status, contact_address_id, registered_at
	`,
		params.FirstName, params.LastName, params.Email, params.Phone,
		params.Status, params.ContactAddressID, params.RegisteredAt,
	).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.Status, &customer.ContactAddressID, &customer.RegisteredAt,
	)
	if err != nil {
		return Customer{}, err
	}

	return customer, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	var customer Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, status, contact_address_id, registered_at
		FROM customers WHERE id = $1
	`, id).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.Status, &customer.ContactAddressID, &customer.RegisteredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return customer, err
}
