package repository

import (
	"errors"

	"health-program-registry/internal/domain/entity"
	domainRepo "health-program-registry/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type programRepository struct{}

func NewProgramRepository() domainRepo.ProgramRepository {
	return &programRepository{}
}

func (r *programRepository) Create(db *gorm.DB, program *entity.Program) error {
	return db.Create(program).Error
}

func (r *programRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Program, error) {
	var program entity.Program
	err := db.Where("id = ?", id).First(&program).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *programRepository) FindByName(db *gorm.DB, name string) (*entity.Program, error) {
	var program entity.Program
	err := db.Where("name = ?", name).First(&program).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *programRepository) Search(db *gorm.DB, query string, includeInactive bool) ([]entity.Program, error) {
	var programs []entity.Program
	tx := db.Model(&entity.Program{})
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+query+"%")
	}
	if !includeInactive {
		tx = tx.Where("active = ?", true)
	}
	err := tx.Order("created_at DESC").Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *programRepository) Update(db *gorm.DB, program *entity.Program) error {
	return db.Save(program).Error
}

func (r *programRepository) Delete(db *gorm.DB, program *entity.Program) error {
	return db.Delete(program).Error
}
