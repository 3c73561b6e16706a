package converter

import (
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
)

// EnrollmentToResponse converts an Enrollment entity to its response DTO
// without resolving references
func EnrollmentToResponse(enrollment *entity.Enrollment) *dto.EnrollmentResponse {
	if enrollment == nil {
		return nil
	}

	return &dto.EnrollmentResponse{
		ID:        enrollment.ID,
		ClientID:  enrollment.ClientID,
		ProgramID: enrollment.ProgramID,
		StartDate: enrollment.StartDate,
		EndDate:   enrollment.EndDate,
		Status:    string(enrollment.Status),
		Notes:     enrollment.Notes,
		CreatedAt: enrollment.CreatedAt,
	}
}

// EnrollmentToDetailResponse converts an Enrollment entity loaded with its
// client and program references
func EnrollmentToDetailResponse(enrollment *entity.Enrollment) *dto.EnrollmentResponse {
	if enrollment == nil {
		return nil
	}

	resp := EnrollmentToResponse(enrollment)
	resp.Client = ClientToResponse(&enrollment.Client)
	resp.Program = ProgramToResponse(&enrollment.Program)
	return resp
}

// EnrollmentsToResponsesWithClient converts enrollments loaded with their
// client reference (program detail view)
func EnrollmentsToResponsesWithClient(enrollments []entity.Enrollment) []dto.EnrollmentResponse {
	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		resp := *EnrollmentToResponse(e)
		resp.Client = ClientToResponse(&e.Client)
		responses = append(responses, resp)
	}
	return responses
}

// EnrollmentsToResponsesWithProgram converts enrollments loaded with their
// program reference (client history view)
func EnrollmentsToResponsesWithProgram(enrollments []entity.Enrollment) []dto.EnrollmentResponse {
	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		resp := *EnrollmentToResponse(e)
		resp.Program = ProgramToResponse(&e.Program)
		responses = append(responses, resp)
	}
	return responses
}
