package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-program-registry/internal/converter"
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/entity"
	"health-program-registry/internal/domain/repository"
	"health-program-registry/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrEnrollmentIDsRequired = errors.New("client ID and program ID are required")
	ErrProgramInactive       = errors.New("cannot enroll in inactive program")
	ErrAlreadyEnrolled       = errors.New("client is already enrolled in this program")
	ErrInvalidStatus         = errors.New("invalid enrollment status")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

type EnrollmentUsecase interface {
	CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*dto.EnrollmentResponse, error)
	UpdateEnrollment(ctx context.Context, enrollmentID uuid.UUID, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	DeleteEnrollment(ctx context.Context, enrollmentID uuid.UUID) error
	ListEnrollmentsForClient(ctx context.Context, clientID uuid.UUID) ([]dto.EnrollmentResponse, error)
	ListEnrollmentsForProgram(ctx context.Context, programID uuid.UUID, limit int) ([]dto.EnrollmentResponse, error)
}

type enrollmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	clientRepo     repository.ClientRepository
	programRepo    repository.ProgramRepository
	enrollmentRepo repository.EnrollmentRepository
	auditService   service.AuditService
	profileCache   *service.ProfileCacheService
}

func NewEnrollmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	programRepo repository.ProgramRepository,
	enrollmentRepo repository.EnrollmentRepository,
	auditService service.AuditService,
	profileCache *service.ProfileCacheService,
) EnrollmentUsecase {
	return &enrollmentUsecase{
		db:             db,
		log:            log,
		clientRepo:     clientRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		auditService:   auditService,
		profileCache:   profileCache,
	}
}

// CreateEnrollment enrolls a client in a program.
//
// Flow:
// 1. Validate both references are supplied and resolve
// 2. Reject enrollment into an inactive program
// 3. Reject when an active enrollment for the (client, program) pair exists
// 4. Insert; a concurrent racer past the check is caught by the partial
//    unique index on (client_id, program_id) WHERE status = 'active'
func (u *enrollmentUsecase) CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	if req.ClientID == "" || req.ProgramID == "" {
		return nil, ErrEnrollmentIDsRequired
	}

	// An unparseable reference behaves like an unknown one
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, ErrClientNotFound
	}
	programID, err := uuid.Parse(req.ProgramID)
	if err != nil {
		return nil, ErrProgramNotFound
	}

	status := entity.EnrollmentStatusActive
	if req.Status != "" {
		status = entity.EnrollmentStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}

	startDate := time.Now().UTC()
	if req.StartDate != "" {
		startDate, err = parseDateInput(req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDateInput(req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		endDate = &parsed
	}

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

	program, err := u.programRepo.FindByID(tx, programID)
	if err != nil {
		u.log.Warnf("Failed to find program %s: %+v", programID, err)
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	if !program.Active {
		return nil, ErrProgramInactive
	}

	// Completed or canceled history never blocks a new enrollment
	existing, err := u.enrollmentRepo.FindActiveByClientAndProgram(tx, clientID, programID)
	if err != nil {
		u.log.Warnf("Failed to check existing enrollment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &entity.Enrollment{
		ClientID:  clientID,
		ProgramID: programID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
		Notes:     nonEmptyPtr(req.Notes),
	}

	if err := u.enrollmentRepo.Create(tx, enrollment); err != nil {
		u.log.Warnf("Failed to create enrollment: %+v", err)
		if isDuplicateKeyError(err, "enrollments_active") {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionEnrollmentCreate, "enrollment", enrollment.ID.String(), converter.EnrollmentToResponse(enrollment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.profileCache.Invalidate(ctx, clientID)

	// Reload with resolved client and program for the response
	full, err := u.enrollmentRepo.FindByID(u.db.WithContext(ctx), enrollment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload enrollment %s: %+v", enrollment.ID, err)
		return converter.EnrollmentToResponse(enrollment), nil
	}

	u.log.Infof("Enrollment created: id=%s, client=%s, program=%s", enrollment.ID, clientID, programID)
	return converter.EnrollmentToDetailResponse(full), nil
}

func (u *enrollmentUsecase) GetEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*dto.EnrollmentResponse, error) {
	enrollment, err := u.enrollmentRepo.FindByID(u.db.WithContext(ctx), enrollmentID)
	if err != nil {
		u.log.Warnf("Failed to find enrollment %s: %+v", enrollmentID, err)
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}

	return converter.EnrollmentToDetailResponse(enrollment), nil
}

// UpdateEnrollment applies a partial update. Any lifecycle state may move to
// any other state, including itself; the calling UI supplies endDate on
// completion and clears it on reactivation.
func (u *enrollmentUsecase) UpdateEnrollment(ctx context.Context, enrollmentID uuid.UUID, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	enrollment, err := u.enrollmentRepo.FindByID(tx, enrollmentID)
	if err != nil {
		u.log.Warnf("Failed to find enrollment %s: %+v", enrollmentID, err)
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}

	oldValue := converter.EnrollmentToResponse(enrollment)

	if req.Status.Valid {
		status := entity.EnrollmentStatus(req.Status.Value)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		enrollment.Status = status
	}
	if req.EndDate.Present {
		if req.EndDate.Valid {
			endDate, err := parseDateInput(req.EndDate.Value)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			enrollment.EndDate = &endDate
		} else {
			enrollment.EndDate = nil
		}
	}
	if req.Notes.Present {
		enrollment.Notes = req.Notes.Ptr()
	}

	if err := u.enrollmentRepo.Update(tx, enrollment); err != nil {
		u.log.Warnf("Failed to update enrollment %s: %+v", enrollmentID, err)
		if isDuplicateKeyError(err, "enrollments_active") {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	newValue := converter.EnrollmentToResponse(enrollment)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionEnrollmentUpdate, "enrollment", enrollmentID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.profileCache.Invalidate(ctx, enrollment.ClientID)

	full, err := u.enrollmentRepo.FindByID(u.db.WithContext(ctx), enrollmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload enrollment %s: %+v", enrollmentID, err)
		return newValue, nil
	}

	return converter.EnrollmentToDetailResponse(full), nil
}

func (u *enrollmentUsecase) DeleteEnrollment(ctx context.Context, enrollmentID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	enrollment, err := u.enrollmentRepo.FindByID(tx, enrollmentID)
	if err != nil {
		u.log.Warnf("Failed to find enrollment %s: %+v", enrollmentID, err)
		return err
	}
	if enrollment == nil {
		return ErrEnrollmentNotFound
	}

	if err := u.enrollmentRepo.Delete(tx, enrollment); err != nil {
		u.log.Warnf("Failed to delete enrollment %s: %+v", enrollmentID, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionEnrollmentDelete, "enrollment", enrollmentID.String(), converter.EnrollmentToResponse(enrollment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.profileCache.Invalidate(ctx, enrollment.ClientID)

	return nil
}

func (u *enrollmentUsecase) ListEnrollmentsForClient(ctx context.Context, clientID uuid.UUID) ([]dto.EnrollmentResponse, error) {
	db := u.db.WithContext(ctx)

	client, err := u.clientRepo.FindByID(db, clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", clientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	enrollments, err := u.enrollmentRepo.FindByClientID(db, clientID)
	if err != nil {
		u.log.Warnf("Failed to list enrollments for client %s: %+v", clientID, err)
		return nil, err
	}

	return converter.EnrollmentsToResponsesWithProgram(enrollments), nil
}

func (u *enrollmentUsecase) ListEnrollmentsForProgram(ctx context.Context, programID uuid.UUID, limit int) ([]dto.EnrollmentResponse, error) {
	db := u.db.WithContext(ctx)

	program, err := u.programRepo.FindByID(db, programID)
	if err != nil {
		u.log.Warnf("Failed to find program %s: %+v", programID, err)
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	enrollments, err := u.enrollmentRepo.FindByProgramID(db, programID, limit)
	if err != nil {
		u.log.Warnf("Failed to list enrollments for program %s: %+v", programID, err)
		return nil, err
	}

	return converter.EnrollmentsToResponsesWithClient(enrollments), nil
}

// parseDateInput accepts plain calendar dates and full RFC 3339 timestamps
func parseDateInput(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// nonEmptyPtr stores empty optional inputs as null
func nonEmptyPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
