package repository

import (
	"errors"

	"health-program-registry/internal/domain/entity"
	domainRepo "health-program-registry/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository struct{}

func NewClientRepository() domainRepo.ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) Create(db *gorm.DB, client *entity.Client) error {
	return db.Create(client).Error
}

func (r *clientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := db.Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByIDWithEnrollments(db *gorm.DB, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := db.Preload("Enrollments", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_date DESC")
	}).Preload("Enrollments.Program").
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Search(db *gorm.DB, query string, offset, limit int) ([]entity.Client, error) {
	var clients []entity.Client
	err := applyClientSearch(db, query).
		Order("last_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) CountSearch(db *gorm.DB, query string) (int64, error) {
	var total int64
	err := applyClientSearch(db.Model(&entity.Client{}), query).Count(&total).Error
	return total, err
}

func (r *clientRepository) Update(db *gorm.DB, client *entity.Client) error {
	return db.Save(client).Error
}

func (r *clientRepository) Delete(db *gorm.DB, client *entity.Client) error {
	return db.Delete(client).Error
}

// applyClientSearch adds a substring filter across name and contact fields
func applyClientSearch(db *gorm.DB, query string) *gorm.DB {
	if query == "" {
		return db
	}
	pattern := "%" + query + "%"
	return db.Where(
		"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?",
		pattern, pattern, pattern, pattern,
	)
}
