package converter

import (
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
)

// AuditLogsToResponses converts audit trail entries to response DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		responses = append(responses, dto.AuditLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt,
		})
	}
	return responses
}
