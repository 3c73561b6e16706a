package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a person profile tracked by the registry
type Client struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName    string    `gorm:"type:varchar(100);not null;index" json:"lastName"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Gender      string    `gorm:"type:varchar(50);not null" json:"gender"`
	Email       *string   `gorm:"type:varchar(255)" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone"`
	Address     *string   `gorm:"type:text" json:"address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Enrollments []Enrollment `gorm:"foreignKey:ClientID" json:"enrollments,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasContactInfo reports whether the client has any public contact details
func (c *Client) HasContactInfo() bool {
	return c.Email != nil || c.Phone != nil
}
