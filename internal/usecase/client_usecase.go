package usecase

import (
	"context"
	"errors"

	"health-program-registry/internal/converter"
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
	"health-program-registry/internal/domain/repository"
	"health-program-registry/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound       = errors.New("client not found")
	ErrClientFieldsRequired = errors.New("first name, last name, date of birth, and gender are required")
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type ClientUsecase interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, clientID uuid.UUID) (*dto.ClientDetailResponse, error)
	ListClients(ctx context.Context, query string, page, pageSize int) (*dto.ClientListResponse, error)
	UpdateClient(ctx context.Context, clientID uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
}

type clientUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	clientRepo     repository.ClientRepository
	enrollmentRepo repository.EnrollmentRepository
	auditService   service.AuditService
	profileCache   *service.ProfileCacheService
}

func NewClientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	enrollmentRepo repository.EnrollmentRepository,
	auditService service.AuditService,
	profileCache *service.ProfileCacheService,
) ClientUsecase {
	return &clientUsecase{
		db:             db,
		log:            log,
		clientRepo:     clientRepo,
		enrollmentRepo: enrollmentRepo,
		auditService:   auditService,
		profileCache:   profileCache,
	}
}

func (u *clientUsecase) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.DateOfBirth == "" || req.Gender == "" {
		return nil, ErrClientFieldsRequired
	}

	dateOfBirth, err := parseDateInput(req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client := &entity.Client{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
		Email:       nonEmptyPtr(req.Email),
		Phone:       nonEmptyPtr(req.Phone),
		Address:     nonEmptyPtr(req.Address),
	}

	if err := u.clientRepo.Create(tx, client); err != nil {
		u.log.Warnf("Failed to create client: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionClientCreate, "client", client.ID.String(), converter.ClientToResponse(client)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) GetClient(ctx context.Context, clientID uuid.UUID) (*dto.ClientDetailResponse, error) {
	client, err := u.clientRepo.FindByIDWithEnrollments(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", clientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	return converter.ClientToDetailResponse(client), nil
}

func (u *clientUsecase) ListClients(ctx context.Context, query string, page, pageSize int) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	db := u.db.WithContext(ctx)
	offset := (page - 1) * pageSize

	clients, err := u.clientRepo.Search(db, query, offset, pageSize)
	if err != nil {
		u.log.Warnf("Failed to search clients: %+v", err)
		return nil, err
	}

	total, err := u.clientRepo.CountSearch(db, query)
	if err != nil {
		u.log.Warnf("Failed to count clients: %+v", err)
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.ClientListResponse{
		Clients: converter.ClientsToResponses(clients),
		Pagination: dto.Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

func (u *clientUsecase) UpdateClient(ctx context.Context, clientID uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, err := u.clientRepo.FindByID(tx, clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", clientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	oldValue := converter.ClientToResponse(client)

	// Required fields only move to a new value; a null is ignored
	if req.FirstName.Valid {
		client.FirstName = req.FirstName.Value
	}
	if req.LastName.Valid {
		client.LastName = req.LastName.Value
	}
	if req.Gender.Valid {
		client.Gender = req.Gender.Value
	}
	if req.DateOfBirth.Valid {
		dateOfBirth, err := parseDateInput(req.DateOfBirth.Value)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		client.DateOfBirth = dateOfBirth
	}

	// Optional fields distinguish absent (unchanged) from null (cleared)
	if req.Email.Present {
		client.Email = req.Email.Ptr()
	}
	if req.Phone.Present {
		client.Phone = req.Phone.Ptr()
	}
	if req.Address.Present {
		client.Address = req.Address.Ptr()
	}

	if err := u.clientRepo.Update(tx, client); err != nil {
		u.log.Warnf("Failed to update client %s: %+v", clientID, err)
		return nil, err
	}

	newValue := converter.ClientToResponse(client)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionClientUpdate, "client", clientID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.profileCache.Invalidate(ctx, clientID)

	return newValue, nil
}

func (u *clientUsecase) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, err := u.clientRepo.FindByID(tx, clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", clientID, err)
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}

	// Enrollments are removed explicitly so the cascade does not depend on
	// driver-level foreign key enforcement
	if err := u.enrollmentRepo.DeleteByClientID(tx, clientID); err != nil {
		u.log.Warnf("Failed to delete enrollments for client %s: %+v", clientID, err)
		return err
	}

	if err := u.clientRepo.Delete(tx, client); err != nil {
		u.log.Warnf("Failed to delete client %s: %+v", clientID, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionClientDelete, "client", clientID.String(), converter.ClientToResponse(client)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.profileCache.Invalidate(ctx, clientID)

	return nil
}
