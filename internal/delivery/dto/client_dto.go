package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateClientRequest is the payload for registering a new client
type CreateClientRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Address     string `json:"address"`
}

// UpdateClientRequest carries a partial update; absent fields are untouched,
// explicit nulls clear optional fields
type UpdateClientRequest struct {
	FirstName   Optional[string] `json:"firstName"`
	LastName    Optional[string] `json:"lastName"`
	DateOfBirth Optional[string] `json:"dateOfBirth"`
	Gender      Optional[string] `json:"gender"`
	Email       Optional[string] `json:"email"`
	Phone       Optional[string] `json:"phone"`
	Address     Optional[string] `json:"address"`
}

// ClientResponse represents client data in responses. Optional contact fields
// are serialized as null when unset, never omitted.
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth string    `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClientDetailResponse is a client together with its enrollment history
type ClientDetailResponse struct {
	ClientResponse
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// Pagination describes the page window of a list response
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// ClientListResponse is the paginated client listing
type ClientListResponse struct {
	Clients    []ClientResponse `json:"clients"`
	Pagination Pagination       `json:"pagination"`
}
