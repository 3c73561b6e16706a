package repository

import (
	"health-program-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(db *gorm.DB, client *entity.Client) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Client, error)
	FindByIDWithEnrollments(db *gorm.DB, id uuid.UUID) (*entity.Client, error)
	Search(db *gorm.DB, query string, offset, limit int) ([]entity.Client, error)
	CountSearch(db *gorm.DB, query string) (int64, error)
	Update(db *gorm.DB, client *entity.Client) error
	Delete(db *gorm.DB, client *entity.Client) error
}
