package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateLeadRequest is the payload submitted by the marketing-site quote form.
// Property type and best-time labels are matched case-insensitively against
// the domain enums inside the lifecycle engine.
type CreateLeadRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=100"`
	LastName    string `json:"lastName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`

	// Property info (street fields come pre-resolved from the address
	// autocomplete on the form)
	PropertyStreet    string  `json:"propertyStreet" validate:"required,max=255"`
	PropertyCity      string  `json:"propertyCity" validate:"required,max=100"`
	PropertyState     string  `json:"propertyState" validate:"required,max=100"`
	PropertyZipCode   string  `json:"propertyZipCode" validate:"required,uszip"`
	PropertyCountry   string  `json:"propertyCountry,omitempty" validate:"max=100"`
	PropertyLatitude  float64 `json:"propertyLatitude"`
	PropertyLongitude float64 `json:"propertyLongitude"`
	PropertyType      string  `json:"propertyType" validate:"required"`
	IsPropertyOwner   bool    `json:"isPropertyOwner"`

	// Qualification
	MonthlyBillRange  string  `json:"monthlyBillRange" validate:"required"`
	BestTimeToContact string  `json:"bestTimeToContact" validate:"required"`
	Notes             *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateLeadStatusRequest updates lifecycle tracking for a lead. The status
// label is parsed case-insensitively; contacted timestamp and notes overwrite
// the stored values verbatim.
type UpdateLeadStatusRequest struct {
	Status      string     `json:"status" validate:"required"`
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ConvertLeadRequest carries optional notes recorded at conversion time.
type ConvertLeadRequest struct {
	AdditionalNotes *string `json:"additionalNotes,omitempty" validate:"omitempty,max=2000"`
}

// Response DTOs

type LeadResponse struct {
	ID              uuid.UUID  `json:"id"`
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber"`
	PropertyType    string     `json:"propertyType"`
	IsPropertyOwner bool       `json:"isPropertyOwner"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	ContactedAt     *time.Time `json:"contactedAt,omitempty"`
	ConvertedAt     *time.Time `json:"convertedAt,omitempty"`

	MonthlyBillRange  string  `json:"monthlyBillRange"`
	BestTimeToContact string  `json:"bestTimeToContact"`
	Notes             *string `json:"notes,omitempty"`

	// PropertyAddress is the composed "street, state, zip, city, country" string.
	PropertyAddress string `json:"propertyAddress"`

	CustomerID *uuid.UUID `json:"customerId,omitempty"`
}

type ConvertLeadResponse struct {
	Lead       LeadResponse `json:"lead"`
	CustomerID uuid.UUID    `json:"customerId"`
}
