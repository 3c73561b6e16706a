package converter

import (
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
)

// ProgramToResponse converts a Program entity to its response DTO
func ProgramToResponse(program *entity.Program) *dto.ProgramResponse {
	if program == nil {
		return nil
	}

	return &dto.ProgramResponse{
		ID:          program.ID,
		Name:        program.Name,
		Description: program.Description,
		Active:      program.Active,
		CreatedAt:   program.CreatedAt,
		UpdatedAt:   program.UpdatedAt,
	}
}

// ProgramsToResponses converts a slice of Program entities to response DTOs
func ProgramsToResponses(programs []entity.Program) []dto.ProgramResponse {
	responses := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		responses = append(responses, *ProgramToResponse(&programs[i]))
	}
	return responses
}

// ProgramToDetailResponse converts a Program entity plus its enrollment count
func ProgramToDetailResponse(program *entity.Program, enrollmentCount int64) *dto.ProgramDetailResponse {
	if program == nil {
		return nil
	}

	return &dto.ProgramDetailResponse{
		ProgramResponse: *ProgramToResponse(program),
		EnrollmentCount: enrollmentCount,
	}
}
