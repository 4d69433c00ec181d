package transport

import (
	"time"

	"github.com/google/uuid"
)

// CustomerResponse is the staff-facing customer projection.
type CustomerResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Status   string    `json:"status"`

	// ContactAddress is the composed "street, state, zip, city, country" string.
	ContactAddress string `json:"contactAddress,omitempty"`

	RegisteredAt time.Time `json:"registeredAt"`
}
