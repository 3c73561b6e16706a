package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEnrollmentRequest is the payload for enrolling a client in a program
type CreateEnrollmentRequest struct {
	ClientID  string `json:"clientId"`
	ProgramID string `json:"programId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// UpdateEnrollmentRequest carries a partial enrollment update. Status accepts
// any of the lifecycle states as a target; endDate null clears a prior value.
type UpdateEnrollmentRequest struct {
	Status  Optional[string] `json:"status"`
	EndDate Optional[string] `json:"endDate"`
	Notes   Optional[string] `json:"notes"`
}

// EnrollmentResponse represents enrollment data in responses. Client and
// Program are populated when the enrollment was loaded with its references.
type EnrollmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	ClientID  uuid.UUID        `json:"clientId"`
	ProgramID uuid.UUID        `json:"programId"`
	StartDate time.Time        `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	Status    string           `json:"status"`
	Notes     *string          `json:"notes"`
	CreatedAt time.Time        `json:"createdAt"`
	Client    *ClientResponse  `json:"client,omitempty"`
	Program   *ProgramResponse `json:"program,omitempty"`
}
