package usecase

import (
	"io"
	"testing"
	"time"

	"health-program-registry/internal/domain/entity"
	"health-program-registry/internal/repository"
	"health-program-registry/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database mirroring the production
// schema. The pool is pinned to one connection so every session sees the
// same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Client{},
		&entity.Program{},
		&entity.Enrollment{},
		&entity.AuditLog{},
	))

	// Same partial unique index the postgres migration creates
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS enrollments_active_client_program_idx
		 ON enrollments (client_id, program_id) WHERE status = 'active'`,
	).Error)

	return db
}

type fixture struct {
	db          *gorm.DB
	clients     ClientUsecase
	programs    ProgramUsecase
	enrollments EnrollmentUsecase
	external    ExternalProfileUsecase
	auditLogs   AuditLogUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	clientRepo := repository.NewClientRepository()
	programRepo := repository.NewProgramRepository()
	enrollmentRepo := repository.NewEnrollmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)
	profileCache := service.NewProfileCacheService(nil, time.Minute, log)

	return &fixture{
		db:          db,
		clients:     NewClientUsecase(db, log, clientRepo, enrollmentRepo, auditService, profileCache),
		programs:    NewProgramUsecase(db, log, programRepo, enrollmentRepo, auditService),
		enrollments: NewEnrollmentUsecase(db, log, clientRepo, programRepo, enrollmentRepo, auditService, profileCache),
		external:    NewExternalProfileUsecase(db, log, clientRepo, profileCache),
		auditLogs:   NewAuditLogUsecase(db, log, auditLogRepo),
	}
}
