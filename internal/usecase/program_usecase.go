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
	ErrProgramNotFound       = errors.New("program not found")
	ErrProgramNameRequired   = errors.New("program name is required")
	ErrProgramNameExists     = errors.New("a program with this name already exists")
	ErrProgramHasEnrollments = errors.New("cannot delete program with enrollments")
)

type ProgramUsecase interface {
	CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	GetProgram(ctx context.Context, programID uuid.UUID) (*dto.ProgramDetailResponse, error)
	ListPrograms(ctx context.Context, query string, includeInactive bool) ([]dto.ProgramResponse, error)
	UpdateProgram(ctx context.Context, programID uuid.UUID, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error)
	DeleteProgram(ctx context.Context, programID uuid.UUID) error
}

type programUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	programRepo    repository.ProgramRepository
	enrollmentRepo repository.EnrollmentRepository
	auditService   service.AuditService
}

func NewProgramUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	programRepo repository.ProgramRepository,
	enrollmentRepo repository.EnrollmentRepository,
	auditService service.AuditService,
) ProgramUsecase {
	return &programUsecase{
		db:             db,
		log:            log,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		auditService:   auditService,
	}
}

func (u *programUsecase) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	if req.Name == "" {
		return nil, ErrProgramNameRequired
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.programRepo.FindByName(tx, req.Name)
	if err != nil {
		u.log.Warnf("Failed to check program name %q: %+v", req.Name, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrProgramNameExists
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	program := &entity.Program{
		Name:        req.Name,
		Description: nonEmptyPtr(req.Description),
		Active:      active,
	}

	if err := u.programRepo.Create(tx, program); err != nil {
		u.log.Warnf("Failed to create program: %+v", err)
		if isDuplicateKeyError(err, "programs_name") {
			return nil, ErrProgramNameExists
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionProgramCreate, "program", program.ID.String(), converter.ProgramToResponse(program)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProgramToResponse(program), nil
}

func (u *programUsecase) GetProgram(ctx context.Context, programID uuid.UUID) (*dto.ProgramDetailResponse, error) {
	db := u.db.WithContext(ctx)

	program, err := u.programRepo.FindByID(db, programID)
	if err != nil {
		u.log.Warnf("Failed to find program %s: %+v", programID, err)
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	count, err := u.enrollmentRepo.CountByProgramID(db, programID)
	if err != nil {
		u.log.Warnf("Failed to count enrollments for program %s: %+v", programID, err)
		return nil, err
	}

	return converter.ProgramToDetailResponse(program, count), nil
}

func (u *programUsecase) ListPrograms(ctx context.Context, query string, includeInactive bool) ([]dto.ProgramResponse, error) {
	programs, err := u.programRepo.Search(u.db.WithContext(ctx), query, includeInactive)
	if err != nil {
		u.log.Warnf("Failed to search programs: %+v", err)
		return nil, err
	}

	return converter.ProgramsToResponses(programs), nil
}

func (u *programUsecase) UpdateProgram(ctx context.Context, programID uuid.UUID, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	program, err := u.programRepo.FindByID(tx, programID)
	if err != nil {
		u.log.Warnf("Failed to find program %s: %+v", programID, err)
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	oldValue := converter.ProgramToResponse(program)

	// Re-check name uniqueness only when the name moves to a different value
	if req.Name.Valid && req.Name.Value != program.Name {
		existing, err := u.programRepo.FindByName(tx, req.Name.Value)
		if err != nil {
			u.log.Warnf("Failed to check program name %q: %+v", req.Name.Value, err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrProgramNameExists
		}
		program.Name = req.Name.Value
	}
	if req.Description.Present {
		program.Description = req.Description.Ptr()
	}
	if req.Active.Valid {
		program.Active = req.Active.Value
	}

	if err := u.programRepo.Update(tx, program); err != nil {
		u.log.Warnf("Failed to update program %s: %+v", programID, err)
		if isDuplicateKeyError(err, "programs_name") {
			return nil, ErrProgramNameExists
		}
		return nil, err
	}

	newValue := converter.ProgramToResponse(program)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionProgramUpdate, "program", programID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *programUsecase) DeleteProgram(ctx context.Context, programID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	program, err := u.programRepo.FindByID(tx, programID)
	if err != nil {
		u.log.Warnf("Failed to find program %s: %+v", programID, err)
		return err
	}
	if program == nil {
		return ErrProgramNotFound
	}

	// Enrollments of any status block deletion
	count, err := u.enrollmentRepo.CountByProgramID(tx, programID)
	if err != nil {
		u.log.Warnf("Failed to count enrollments for program %s: %+v", programID, err)
		return err
	}
	if count > 0 {
		return ErrProgramHasEnrollments
	}

	if err := u.programRepo.Delete(tx, program); err != nil {
		u.log.Warnf("Failed to delete program %s: %+v", programID, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionProgramDelete, "program", programID.String(), converter.ProgramToResponse(program)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
