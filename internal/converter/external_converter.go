package converter

import (
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
)

// ClientToExternalProfile shapes a client with preloaded enrollments into the
// data-minimized external projection. Address, notes and enrollment ids are
// deliberately not carried over.
func ClientToExternalProfile(client *entity.Client) *dto.ExternalClientProfile {
	if client == nil {
		return nil
	}

	var contactInfo *dto.ExternalContactInfo
	if client.HasContactInfo() {
		contactInfo = &dto.ExternalContactInfo{
			Email: client.Email,
			Phone: client.Phone,
		}
	}

	programs := make([]dto.ExternalProgramSummary, 0, len(client.Enrollments))
	for i := range client.Enrollments {
		e := &client.Enrollments[i]
		programs = append(programs, dto.ExternalProgramSummary{
			ID:        e.Program.ID,
			Name:      e.Program.Name,
			Status:    string(e.Status),
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		})
	}

	return &dto.ExternalClientProfile{
		ID:          client.ID,
		FirstName:   client.FirstName,
		LastName:    client.LastName,
		DateOfBirth: client.DateOfBirth.Format("2006-01-02"),
		Gender:      client.Gender,
		ContactInfo: contactInfo,
		Programs:    programs,
	}
}
