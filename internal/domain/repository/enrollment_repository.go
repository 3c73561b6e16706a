package repository

import (
	"health-program-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(db *gorm.DB, enrollment *entity.Enrollment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Enrollment, error)
	FindActiveByClientAndProgram(db *gorm.DB, clientID, programID uuid.UUID) (*entity.Enrollment, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Enrollment, error)
	FindByProgramID(db *gorm.DB, programID uuid.UUID, limit int) ([]entity.Enrollment, error)
	CountByProgramID(db *gorm.DB, programID uuid.UUID) (int64, error)
	Update(db *gorm.DB, enrollment *entity.Enrollment) error
	Delete(db *gorm.DB, enrollment *entity.Enrollment) error
	DeleteByClientID(db *gorm.DB, clientID uuid.UUID) error
}
