// Package domain provides core business rules for the leads bounded context.
package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a lead, from initial quote request to
// conversion or drop-off.
type Status string

const (
	// StatusNew is a fresh lead captured from the website quote form.
	StatusNew Status = "New"
	// StatusContacted means the sales team has reached out to the lead.
	StatusContacted Status = "Contacted"
	// StatusConverted means the lead became a paying customer. Terminal.
	StatusConverted Status = "Converted"
	// StatusDisqualified means the lead is not a valid prospect
	// (outside service area, renter, fake submission). Terminal.
	StatusDisqualified Status = "Disqualified"
	// StatusLost means the lead stopped responding or lost interest. Terminal.
	StatusLost Status = "Lost"
)

// statusByLabel is the single case-insensitive lookup table shared by
// validation and lifecycle logic, so every layer accepts the same spellings.
var statusByLabel = map[string]Status{
	"new":          StatusNew,
	"contacted":    StatusContacted,
	"converted":    StatusConverted,
	"disqualified": StatusDisqualified,
	"lost":         StatusLost,
}

// ParseStatus resolves a status label case-insensitively.
func ParseStatus(label string) (Status, error) {
	if s, ok := statusByLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown lead status %q", label)
}

// IsTerminal returns true for statuses that permit no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusConverted, StatusDisqualified, StatusLost:
		return true
	}
	return false
}

// CanTransitionTo reports whether a direct status update from s to target is
// allowed. Terminal states are absorbing, and Converted can only be entered
// through the conversion operation (which creates the customer record), never
// through a plain status update.
func (s Status) CanTransitionTo(target Status) error {
	if s == target {
		return nil
	}
	if s.IsTerminal() {
		return fmt.Errorf("lead status %s is terminal", s)
	}
	if target == StatusConverted {
		return fmt.Errorf("status cannot be set to %s directly; use the convert operation", StatusConverted)
	}
	return nil
}

// PropertyType categorizes the property a quote was requested for.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeCommercial PropertyType = "Commercial"
)

var propertyTypeByLabel = map[string]PropertyType{
	"house":      PropertyTypeHouse,
	"apartment":  PropertyTypeApartment,
	"commercial": PropertyTypeCommercial,
}

// ParsePropertyType resolves a property type label case-insensitively.
func ParsePropertyType(label string) (PropertyType, error) {
	if p, ok := propertyTypeByLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown property type %q", label)
}

// ContactWindows are the accepted best-time-to-contact labels.
var ContactWindows = []string{"Morning", "Afternoon", "Evening"}
