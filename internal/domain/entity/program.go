package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Program represents a named health program clients can enroll in
type Program struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	// No column default tag; gorm would drop an explicit false from the
	// insert. The create path always sets the value.
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Enrollments []Enrollment `gorm:"foreignKey:ProgramID" json:"enrollments,omitempty"`
}

func (Program) TableName() string {
	return "programs"
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
