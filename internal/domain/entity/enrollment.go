package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentStatus represents the lifecycle status of an enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCanceled  EnrollmentStatus = "canceled"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusCompleted, EnrollmentStatusCanceled:
		return true
	}
	return false
}

// Enrollment links one client to one program with a lifecycle status
type Enrollment struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"clientId"`
	ProgramID uuid.UUID        `gorm:"type:uuid;not null;index" json:"programId"`
	StartDate time.Time        `gorm:"not null" json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	Status    EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Notes     *string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Client  Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Program Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// IsActive checks if the enrollment is currently active
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}
