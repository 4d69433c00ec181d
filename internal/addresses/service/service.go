// Package service implements the address resolver. Each lead gets its own
// address row at intake time; the dedup hash is stored so duplicate property
// submissions can be reported on without sharing rows between leads.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"solaris_crm_backend/internal/addresses/repository"
)

const defaultCountry = "USA"

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// ResolveParams are the raw property-address fields from the quote form.
type ResolveParams struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Latitude  float64
	Longitude float64
}

// Resolve normalizes the raw fields and creates the canonical address row
// for a lead.
func (s *Service) Resolve(ctx context.Context, params ResolveParams) (repository.Address, error) {
	country := strings.TrimSpace(params.Country)
	if country == "" {
		country = defaultCountry
	}

	normalized := repository.CreateAddressParams{
		Street:    strings.TrimSpace(params.Street),
		City:      strings.TrimSpace(params.City),
		State:     strings.TrimSpace(params.State),
		ZipCode:   strings.TrimSpace(params.ZipCode),
		Country:   country,
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
	}
	normalized.DedupHash = dedupHash(normalized)

	return s.repo.Create(ctx, normalized)
}

// FormatFull composes the display string used in responses and emails.
func FormatFull(addr repository.Address) string {
	return fmt.Sprintf("%s, %s, %s, %s, %s", addr.Street, addr.State, addr.ZipCode, addr.City, addr.Country)
}

func dedupHash(params repository.CreateAddressParams) string {
	key := strings.ToLower(strings.Join([]string{
		params.Street, params.City, params.State, params.ZipCode, params.Country,
	}, "|"))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
