// Package service implements the lead lifecycle engine: intake, status
// transitions, conversion into customers, retrieval, and deletion.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	addressrepo "solaris_crm_backend/internal/addresses/repository"
	addresssvc "solaris_crm_backend/internal/addresses/service"
	customerrepo "solaris_crm_backend/internal/customers/repository"
	"solaris_crm_backend/internal/events"
	"solaris_crm_backend/internal/leads/domain"
	"solaris_crm_backend/internal/leads/repository"
	"solaris_crm_backend/internal/leads/transport"
	"solaris_crm_backend/platform/apperr"
	"solaris_crm_backend/platform/logger"
	"solaris_crm_backend/platform/phone"
	platformvalidator "solaris_crm_backend/platform/validator"
)

// LeadStore is the persistence surface the engine needs.
type LeadStore interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	List(ctx context.Context) ([]repository.Lead, error)
	Update(ctx context.Context, lead repository.Lead) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// AddressResolver creates the canonical address row for a lead's property.
type AddressResolver interface {
	Resolve(ctx context.Context, params addresssvc.ResolveParams) (addressrepo.Address, error)
}

// CustomerStore creates customer records during conversion.
type CustomerStore interface {
	Create(ctx context.Context, params customerrepo.CreateCustomerParams) (customerrepo.Customer, error)
}

type Service struct {
	repo      LeadStore
	addresses AddressResolver
	customers CustomerStore
	bus       events.Bus
	log       *logger.Logger
}

func New(repo LeadStore, addresses AddressResolver, customers CustomerStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		addresses: addresses,
		customers: customers,
		bus:       bus,
		log:       log,
	}
}

// Create captures a new lead from the quote form. The address is resolved
// first so a lead row never exists without its property address; notification
// dispatch happens via the event bus and can never fail the request.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if err := s.validateCreate(req); err != nil {
		return transport.LeadResponse{}, err
	}

	propertyType, err := domain.ParsePropertyType(req.PropertyType)
	if err != nil {
		return transport.LeadResponse{}, apperr.Validation(err.Error()).WithOp("leads.create")
	}

	addr, err := s.addresses.Resolve(ctx, addresssvc.ResolveParams{
		Street:    req.PropertyStreet,
		City:      req.PropertyCity,
		State:     req.PropertyState,
		ZipCode:   req.PropertyZipCode,
		Country:   req.PropertyCountry,
		Latitude:  req.PropertyLatitude,
		Longitude: req.PropertyLongitude,
	})
	if err != nil {
		s.log.DatabaseError("leads.create.resolve_address", err)
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindDependency, "could not record the property address", err).WithOp("leads.create")
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:       phone.NormalizeE164(req.PhoneNumber),
		PropertyType:      string(propertyType),
		IsPropertyOwner:   req.IsPropertyOwner,
		AddressID:         addr.ID,
		MonthlyBillRange:  strings.TrimSpace(req.MonthlyBillRange),
		BestTimeToContact: canonicalContactWindow(req.BestTimeToContact),
		Notes:             req.Notes,
		Status:            string(domain.StatusNew),
	})
	if err != nil {
		s.log.DatabaseError("leads.create", err)
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "could not save the lead", err).WithOp("leads.create")
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          lead.ID,
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           lead.PhoneNumber,
		PropertyAddress: formatAddress(lead),
	})

	return toLeadResponse(lead), nil
}

// UpdateStatus moves a lead through its lifecycle. Converted cannot be
// entered here; that is the conversion operation's job.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) error {
	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		return apperr.Validation(err.Error()).WithOp("leads.update_status")
	}

	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found").WithOp("leads.update_status")
	}
	if err != nil {
		s.log.DatabaseError("leads.update_status.load", err)
		return apperr.Wrap(apperr.KindInternal, "could not load the lead", err).WithOp("leads.update_status")
	}

	current := domain.Status(lead.Status)
	if err := current.CanTransitionTo(target); err != nil {
		return apperr.Conflict(err.Error()).WithOp("leads.update_status")
	}

	oldStatus := lead.Status
	lead.Status = string(target)
	if req.ContactedAt != nil {
		lead.ContactedAt = req.ContactedAt
	} else if current == domain.StatusNew && target != domain.StatusNew && lead.ContactedAt == nil {
		now := time.Now()
		lead.ContactedAt = &now
	}
	// Notes are taken verbatim from the request; omitting them clears the
	// stored value.
	lead.Notes = req.Notes

	rows, err := s.repo.Update(ctx, lead)
	if err != nil {
		s.log.DatabaseError("leads.update_status", err)
		return apperr.Wrap(apperr.KindInternal, "could not update the lead", err).WithOp("leads.update_status")
	}
	if rows == 0 {
		return apperr.BadRequest("no changes were applied").WithOp("leads.update_status")
	}

	if oldStatus != lead.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldStatus: oldStatus,
			NewStatus: lead.Status,
		})
	}
	return nil
}

// Convert turns a lead into a customer. The customer record is created first;
// if the subsequent lead update does not land, the failure is surfaced rather
// than reported as success.
func (s *Service) Convert(ctx context.Context, id uuid.UUID, req transport.ConvertLeadRequest) (transport.ConvertLeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.ConvertLeadResponse{}, apperr.NotFound("lead not found").WithOp("leads.convert")
	}
	if err != nil {
		s.log.DatabaseError("leads.convert.load", err)
		return transport.ConvertLeadResponse{}, apperr.Wrap(apperr.KindInternal, "could not load the lead", err).WithOp("leads.convert")
	}

	current := domain.Status(lead.Status)
	if current == domain.StatusConverted {
		return transport.ConvertLeadResponse{}, apperr.Conflict("lead is already converted").WithOp("leads.convert")
	}
	if current.IsTerminal() {
		return transport.ConvertLeadResponse{}, apperr.Conflict(fmt.Sprintf("lead status %s is terminal", current)).WithOp("leads.convert")
	}

	customer, err := s.customers.Create(ctx, customerrepo.CreateCustomerParams{
		FirstName:        lead.FirstName,
		LastName:         lead.LastName,
		Email:            lead.Email,
		Phone:            lead.PhoneNumber,
		Status:           customerrepo.StatusProspect,
		ContactAddressID: lead.AddressID,
		RegisteredAt:     time.Now(),
	})
	if err != nil {
		s.log.DatabaseError("leads.convert.create_customer", err)
		return transport.ConvertLeadResponse{}, apperr.Wrap(apperr.KindDependency, "could not create the customer record", err).WithOp("leads.convert")
	}

	now := time.Now()
	lead.Status = string(domain.StatusConverted)
	lead.ConvertedAt = &now
	lead.CustomerID = &customer.ID
	lead.Notes = req.AdditionalNotes

	rows, err := s.repo.Update(ctx, lead)
	if err != nil {
		s.log.DatabaseError("leads.convert", err)
		return transport.ConvertLeadResponse{}, apperr.Wrap(apperr.KindInternal, "could not record the conversion", err).WithOp("leads.convert")
	}
	if rows == 0 {
		return transport.ConvertLeadResponse{}, apperr.Internal("conversion was not recorded").WithOp("leads.convert")
	}

	s.bus.Publish(ctx, events.LeadConverted{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		CustomerID: customer.ID,
	})

	return transport.ConvertLeadResponse{
		Lead:       toLeadResponse(lead),
		CustomerID: customer.ID,
	}, nil
}

// Get returns a single lead projection.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.LeadResponse{}, apperr.NotFound("lead not found").WithOp("leads.get")
	}
	if err != nil {
		s.log.DatabaseError("leads.get", err)
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "could not load the lead", err).WithOp("leads.get")
	}
	return toLeadResponse(lead), nil
}

// List returns all leads, newest first. No leads is a valid, empty result.
func (s *Service) List(ctx context.Context) ([]transport.LeadResponse, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("leads.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list leads", err).WithOp("leads.list")
	}

	responses := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, toLeadResponse(lead))
	}
	return responses, nil
}

// Delete removes a lead. Deleting an absent lead is a success.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.DatabaseError("leads.delete", err)
		return apperr.Wrap(apperr.KindInternal, "could not delete the lead", err).WithOp("leads.delete")
	}
	if deleted {
		s.bus.Publish(ctx, events.LeadDeleted{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    id,
		})
	}
	return nil
}

func (s *Service) validateCreate(req transport.CreateLeadRequest) error {
	if err := platformvalidator.Validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation("invalid lead data").WithDetails(validationDetails(verrs)).WithOp("leads.create")
		}
		return apperr.Validation("invalid lead data").WithOp("leads.create")
	}

	if _, ok := parseContactWindow(req.BestTimeToContact); !ok {
		return apperr.Validation(fmt.Sprintf("best time to contact must be one of %s", strings.Join(domain.ContactWindows, ", "))).WithOp("leads.create")
	}

	// Renters cannot authorize a residential installation; commercial
	// inquiries are handled by the sales team regardless of ownership.
	propertyType, err := domain.ParsePropertyType(req.PropertyType)
	if err == nil && propertyType != domain.PropertyTypeCommercial && !req.IsPropertyOwner {
		return apperr.Validation("property owner confirmation is required").WithOp("leads.create")
	}

	return nil
}

func parseContactWindow(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	for _, window := range domain.ContactWindows {
		if strings.EqualFold(trimmed, window) {
			return window, true
		}
	}
	return "", false
}

func canonicalContactWindow(label string) string {
	if window, ok := parseContactWindow(label); ok {
		return window
	}
	return strings.TrimSpace(label)
}

func validationDetails(verrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = validationMessage(fe)
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "phone":
		return "must be a valid phone number"
	case "uszip":
		return "must be a ZIP code like 12345 or 12345-6789"
	default:
		return "is invalid"
	}
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                lead.ID,
		FullName:          lead.FirstName + " " + lead.LastName,
		Email:             lead.Email,
		PhoneNumber:       lead.PhoneNumber,
		PropertyType:      lead.PropertyType,
		IsPropertyOwner:   lead.IsPropertyOwner,
		Status:            lead.Status,
		CreatedAt:         lead.CreatedAt,
		ContactedAt:       lead.ContactedAt,
		ConvertedAt:       lead.ConvertedAt,
		MonthlyBillRange:  lead.MonthlyBillRange,
		BestTimeToContact: lead.BestTimeToContact,
		Notes:             lead.Notes,
		PropertyAddress:   formatAddress(lead),
		CustomerID:        lead.CustomerID,
	}
}

func formatAddress(lead repository.Lead) string {
	return addresssvc.FormatFull(addressrepo.Address{
		Street:  lead.Street,
		City:    lead.City,
		State:   lead.State,
		ZipCode: lead.ZipCode,
		Country: lead.Country,
	})
}
