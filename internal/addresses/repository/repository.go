package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("address not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Address struct {
	ID        uuid.UUID
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  float64
	Longitude float64
	DedupHash string
	CreatedAt time.Time
}

type CreateAddressParams struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  float64
	Longitude float64
	DedupHash string
}

func (r *Repository) Create(ctx context.Context, params CreateAddressParams) (Address, error) {
	var addr Address
	err := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (street, city, state, zip_code, country, latitude, longitude, dedup_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, street, city, state, zip_code, country, latitude, longitude, dedup_hash, created_at
	`,
		params.Street, params.City, params.State, params.ZipCode, params.Country,
		params.Latitude, params.Longitude, params.DedupHash,
	).Scan(
		&addr.ID, &addr.Street, &addr.City, &addr.State, &addr.ZipCode, &addr.Country,
		&addr.Latitude, &addr.Longitude, &addr.DedupHash, &addr.CreatedAt,
	)
	if err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Address, error) {
	var addr Address
	err := r.pool.QueryRow(ctx, `
		SELECT id, street, city, state, zip_code, country, latitude, longitude, dedup_hash, created_at
		FROM addresses WHERE id = $1
	`, id).Scan(
		&addr.ID, &addr.Street, &addr.City, &addr.State, &addr.ZipCode, &addr.Country,
		&addr.Latitude, &addr.Longitude, &addr.DedupHash, &addr.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, ErrNotFound
	}
	return addr, err
}
