package dto

import (
	"time"

	"github.com/google/uuid"
)

// ExternalContactInfo is the public contact subset of a client profile
type ExternalContactInfo struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ExternalProgramSummary projects an enrollment down to the program facts a
// third party may see. ID is the program id, not the enrollment id.
type ExternalProgramSummary struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// ExternalClientProfile is the data-minimized client view for third-party
// consumption. It never carries the address, enrollment notes, or internal
// enrollment ids.
type ExternalClientProfile struct {
	ID          uuid.UUID                `json:"id"`
	FirstName   string                   `json:"firstName"`
	LastName    string                   `json:"lastName"`
	DateOfBirth string                   `json:"dateOfBirth"`
	Gender      string                   `json:"gender"`
	ContactInfo *ExternalContactInfo     `json:"contactInfo"`
	Programs    []ExternalProgramSummary `json:"programs"`
}
