package converter

import (
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
)

// ClientToResponse converts a Client entity to its response DTO
func ClientToResponse(client *entity.Client) *dto.ClientResponse {
	if client == nil {
		return nil
	}

	return &dto.ClientResponse{
		ID:          client.ID,
		FirstName:   client.FirstName,
		LastName:    client.LastName,
		DateOfBirth: client.DateOfBirth.Format("2006-01-02"),
		Gender:      client.Gender,
		Email:       client.Email,
		Phone:       client.Phone,
		Address:     client.Address,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}

// ClientsToResponses converts a slice of Client entities to response DTOs
func ClientsToResponses(clients []entity.Client) []dto.ClientResponse {
	responses := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *ClientToResponse(&clients[i]))
	}
	return responses
}

// ClientToDetailResponse converts a Client entity with preloaded enrollments
// to the detail DTO, each enrollment carrying its resolved program
func ClientToDetailResponse(client *entity.Client) *dto.ClientDetailResponse {
	if client == nil {
		return nil
	}

	enrollments := make([]dto.EnrollmentResponse, 0, len(client.Enrollments))
	for i := range client.Enrollments {
		e := &client.Enrollments[i]
		resp := *EnrollmentToResponse(e)
		resp.Program = ProgramToResponse(&e.Program)
		enrollments = append(enrollments, resp)
	}

	return &dto.ClientDetailResponse{
		ClientResponse: *ClientToResponse(client),
		Enrollments:    enrollments,
	}
}
