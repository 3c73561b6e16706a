package repository

import (
	"errors"

	"health-program-registry/internal/domain/entity"
	domainRepo "health-program-registry/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type enrollmentRepository struct{}

func NewEnrollmentRepository() domainRepo.EnrollmentRepository {
	return &enrollmentRepository{}
}

func (r *enrollmentRepository) Create(db *gorm.DB, enrollment *entity.Enrollment) error {
	return db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	err := db.Preload("Client").Preload("Program").Where("id = ?", id).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindActiveByClientAndProgram returns the single active enrollment for the
// (client, program) pair, or nil when none exists.
func (r *enrollmentRepository) FindActiveByClientAndProgram(db *gorm.DB, clientID, programID uuid.UUID) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	err := db.Where("client_id = ? AND program_id = ? AND status = ?", clientID, programID, entity.EnrollmentStatusActive).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Enrollment, error) {
	var enrollments []entity.Enrollment
	err := db.Preload("Program").
		Where("client_id = ?", clientID).
		Order("start_date DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) FindByProgramID(db *gorm.DB, programID uuid.UUID, limit int) ([]entity.Enrollment, error) {
	var enrollments []entity.Enrollment
	tx := db.Preload("Client").
		Where("program_id = ?", programID).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) CountByProgramID(db *gorm.DB, programID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Enrollment{}).Where("program_id = ?", programID).Count(&total).Error
	return total, err
}

func (r *enrollmentRepository) Update(db *gorm.DB, enrollment *entity.Enrollment) error {
	// The enrollment may carry loaded Client/Program references; only the
	// enrollment row itself is written
	return db.Omit(clause.Associations).Save(enrollment).Error
}

func (r *enrollmentRepository) Delete(db *gorm.DB, enrollment *entity.Enrollment) error {
	return db.Delete(enrollment).Error
}

func (r *enrollmentRepository) DeleteByClientID(db *gorm.DB, clientID uuid.UUID) error {
	return db.Where("client_id = ?", clientID).Delete(&entity.Enrollment{}).Error
}
