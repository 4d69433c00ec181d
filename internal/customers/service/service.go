// Package service implements the staff-facing customer read surface.
// Customers are created by lead conversion; this service serves them back
// with their contact address composed in.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	addressrepo "solaris_crm_backend/internal/addresses/repository"
	addresssvc "solaris_crm_backend/internal/addresses/service"
	"solaris_crm_backend/internal/customers/repository"
	"solaris_crm_backend/internal/customers/transport"
	"solaris_crm_backend/platform/apperr"
	"solaris_crm_backend/platform/logger"
)

// CustomerStore loads customer records.
type CustomerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Customer, error)
}

// AddressStore loads the contact address a customer references.
type AddressStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (addressrepo.Address, error)
}

type Service struct {
	repo      CustomerStore
	addresses AddressStore
	log       *logger.Logger
}

func New(repo CustomerStore, addresses AddressStore, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		addresses: addresses,
		log:       log,
	}
}

// Get returns a single customer with the contact address attached. A missing
// address row leaves the contact address blank rather than failing the read.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.CustomerResponse{}, apperr.NotFound("customer not found").WithOp("customers.get")
	}
	if err != nil {
		s.log.DatabaseError("customers.get", err)
		return transport.CustomerResponse{}, apperr.Wrap(apperr.KindInternal, "could not load the customer", err).WithOp("customers.get")
	}

	addr, err := s.addresses.GetByID(ctx, customer.ContactAddressID)
	if err != nil && !errors.Is(err, addressrepo.ErrNotFound) {
		s.log.DatabaseError("customers.get.address", err)
		return transport.CustomerResponse{}, apperr.Wrap(apperr.KindInternal, "could not load the contact address", err).WithOp("customers.get")
	}

	return toCustomerResponse(customer, addr), nil
}

func toCustomerResponse(customer repository.Customer, addr addressrepo.Address) transport.CustomerResponse {
	resp := transport.CustomerResponse{
		ID:           customer.ID,
		FullName:     customer.FirstName + " " + customer.LastName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Status:       customer.Status,
		RegisteredAt: customer.RegisteredAt,
	}
	if addr.ID != uuid.Nil {
		resp.ContactAddress = addresssvc.FormatFull(addr)
	}
	return resp
}
