package dto

import (
	"time"

	"health-program-registry/internal/domain/entity"
)

// AuditLogResponse represents an audit trail entry in responses
type AuditLogResponse struct {
	ID        int64       `json:"id"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuditLogListResponse is the audit trail listing
type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
