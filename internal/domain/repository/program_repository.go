package repository

import (
	"health-program-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramRepository interface {
	Create(db *gorm.DB, program *entity.Program) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Program, error)
	FindByName(db *gorm.DB, name string) (*entity.Program, error)
	Search(db *gorm.DB, query string, includeInactive bool) ([]entity.Program, error)
	Update(db *gorm.DB, program *entity.Program) error
	Delete(db *gorm.DB, program *entity.Program) error
}
