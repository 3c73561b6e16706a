package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProgramRequest is the payload for creating a health program
type CreateProgramRequest struct {
	Name        string `json:"name" validate:"omitempty,max=255"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// UpdateProgramRequest carries a partial program update
type UpdateProgramRequest struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Active      Optional[bool]   `json:"active"`
}

// ProgramResponse represents program data in responses
type ProgramResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProgramDetailResponse is a program together with its enrollment count
type ProgramDetailResponse struct {
	ProgramResponse
	EnrollmentCount int64 `json:"enrollmentCount"`
}
