package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	delivery "health-program-registry/internal/delivery/http"
	"health-program-registry/internal/delivery/http/handler"
	"health-program-registry/internal/delivery/http/middleware"
	"health-program-registry/internal/domain/entity"
	"health-program-registry/internal/repository"
	"health-program-registry/internal/service"
	"health-program-registry/internal/usecase"
	"health-program-registry/pkg/validator"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) *httptest.Server {
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
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS enrollments_active_client_program_idx
		 ON enrollments (client_id, program_id) WHERE status = 'active'`,
	).Error)

	log := logrus.New()
	log.SetOutput(io.Discard)

	clientRepo := repository.NewClientRepository()
	programRepo := repository.NewProgramRepository()
	enrollmentRepo := repository.NewEnrollmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)
	profileCache := service.NewProfileCacheService(nil, time.Minute, log)
	metricsService := service.NewMetricsService()

	clientUsecase := usecase.NewClientUsecase(db, log, clientRepo, enrollmentRepo, auditService, profileCache)
	programUsecase := usecase.NewProgramUsecase(db, log, programRepo, enrollmentRepo, auditService)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(db, log, clientRepo, programRepo, enrollmentRepo, auditService, profileCache)
	externalUsecase := usecase.NewExternalProfileUsecase(db, log, clientRepo, profileCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	customValidator := validator.NewValidator()

	router := delivery.NewRouter(
		handler.NewClientHandler(clientUsecase, enrollmentUsecase, customValidator),
		handler.NewProgramHandler(programUsecase, enrollmentUsecase, customValidator),
		handler.NewEnrollmentHandler(enrollmentUsecase, customValidator),
		handler.NewExternalHandler(externalUsecase),
		handler.NewAuditLogHandler(auditLogUsecase),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
		middleware.NewMetricsMiddleware(metricsService),
		metricsService,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, server *httptest.Server, path string) (int, []map[string]any) {
	t.Helper()

	resp, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

func TestEnrollmentLifecycleOverHTTP(t *testing.T) {
	server := setupServer(t)

	status, program := doJSON(t, server, http.MethodPost, "/programs", map[string]any{
		"name":        "Diabetes Care",
		"description": "Ongoing diabetes management",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, program["active"])
	programID := program["id"].(string)

	status, client := doJSON(t, server, http.MethodPost, "/clients", map[string]any{
		"firstName":   "Ann",
		"lastName":    "Lee",
		"dateOfBirth": "1990-04-12",
		"gender":      "female",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "1990-04-12", client["dateOfBirth"])
	clientID := client["id"].(string)

	status, enrollment := doJSON(t, server, http.MethodPost, "/enrollments", map[string]any{
		"clientId":  clientID,
		"programId": programID,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "active", enrollment["status"])
	require.Nil(t, enrollment["endDate"])
	require.Equal(t, "Diabetes Care", enrollment["program"].(map[string]any)["name"])
	enrollmentID := enrollment["id"].(string)

	// A second active enrollment in the same program conflicts
	status, body := doJSON(t, server, http.MethodPost, "/enrollments", map[string]any{
		"clientId":  clientID,
		"programId": programID,
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "Client is already enrolled in this program", body["error"])

	status, updated := doJSON(t, server, http.MethodPut, "/enrollments/"+enrollmentID, map[string]any{
		"status":  "completed",
		"endDate": "2024-08-01",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "completed", updated["status"])
	require.NotNil(t, updated["endDate"])

	// Completion frees the slot for a fresh enrollment
	status, second := doJSON(t, server, http.MethodPost, "/enrollments", map[string]any{
		"clientId":  clientID,
		"programId": programID,
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotEqual(t, enrollmentID, second["id"])

	status, history := doJSONList(t, server, "/clients/"+clientID+"/enrollments")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history, 2)
}

func TestClientValidationOverHTTP(t *testing.T) {
	server := setupServer(t)

	status, body := doJSON(t, server, http.MethodPost, "/clients", map[string]any{
		"firstName": "Ann",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "First name, last name, date of birth, and gender are required", body["error"])

	status, body = doJSON(t, server, http.MethodPost, "/clients", map[string]any{
		"firstName":   "Ann",
		"lastName":    "Lee",
		"dateOfBirth": "1990-04-12",
		"gender":      "female",
		"email":       "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email must be a valid email address", body["error"])

	status, body = doJSON(t, server, http.MethodGet, "/clients/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid client ID", body["error"])

	status, body = doJSON(t, server, http.MethodGet, "/clients/6f9bd0f8-0b3e-4b44-9a6c-25b4a2a2a0d5", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Client not found", body["error"])
}

func TestProgramConflictsOverHTTP(t *testing.T) {
	server := setupServer(t)

	status, program := doJSON(t, server, http.MethodPost, "/programs", map[string]any{
		"name": "Diabetes Care",
	})
	require.Equal(t, http.StatusCreated, status)
	programID := program["id"].(string)

	status, body := doJSON(t, server, http.MethodPost, "/programs", map[string]any{
		"name": "Diabetes Care",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "A program with this name already exists", body["error"])

	status, body = doJSON(t, server, http.MethodPost, "/programs", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Program name is required", body["error"])

	// Block deletion while an enrollment references the program
	status, client := doJSON(t, server, http.MethodPost, "/clients", map[string]any{
		"firstName":   "Ann",
		"lastName":    "Lee",
		"dateOfBirth": "1990-04-12",
		"gender":      "female",
	})
	require.Equal(t, http.StatusCreated, status)

	status, enrollment := doJSON(t, server, http.MethodPost, "/enrollments", map[string]any{
		"clientId":  client["id"],
		"programId": programID,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, server, http.MethodDelete, "/programs/"+programID, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Cannot delete program with active enrollments", body["error"])

	status, body = doJSON(t, server, http.MethodDelete, "/enrollments/"+enrollment["id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	status, body = doJSON(t, server, http.MethodDelete, "/programs/"+programID, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
}

func TestExternalProfileOverHTTP(t *testing.T) {
	server := setupServer(t)

	status, client := doJSON(t, server, http.MethodPost, "/clients", map[string]any{
		"firstName":   "Ann",
		"lastName":    "Lee",
		"dateOfBirth": "1990-04-12",
		"gender":      "female",
		"email":       "ann.lee@example.com",
		"address":     "12 Elm Street",
	})
	require.Equal(t, http.StatusCreated, status)
	clientID := client["id"].(string)

	status, program := doJSON(t, server, http.MethodPost, "/programs", map[string]any{
		"name": "Diabetes Care",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, server, http.MethodPost, "/enrollments", map[string]any{
		"clientId":  clientID,
		"programId": program["id"],
		"notes":     "internal note",
	})
	require.Equal(t, http.StatusCreated, status)

	status, profile := doJSON(t, server, http.MethodGet, "/external/clients/"+clientID, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, clientID, profile["id"])
	require.Equal(t, "1990-04-12", profile["dateOfBirth"])

	contactInfo := profile["contactInfo"].(map[string]any)
	require.Equal(t, "ann.lee@example.com", contactInfo["email"])
	require.Nil(t, contactInfo["phone"])

	// Address and enrollment notes never leave the registry
	_, hasAddress := profile["address"]
	require.False(t, hasAddress)

	programs := profile["programs"].([]any)
	require.Len(t, programs, 1)
	summary := programs[0].(map[string]any)
	require.Equal(t, program["id"], summary["id"])
	require.Equal(t, "Diabetes Care", summary["name"])
	require.Equal(t, "active", summary["status"])
	_, hasNotes := summary["notes"]
	require.False(t, hasNotes)

	status, body := doJSON(t, server, http.MethodGet, "/external/clients/"+clientID[:8], nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, body["error"])
}

func TestListClientsPaginationOverHTTP(t *testing.T) {
	server := setupServer(t)

	for _, lastName := range []string{"Adams", "Baker", "Chen"} {
		status, _ := doJSON(t, server, http.MethodPost, "/clients", map[string]any{
			"firstName":   "Client",
			"lastName":    lastName,
			"dateOfBirth": "1985-01-01",
			"gender":      "other",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, server, http.MethodGet, "/clients?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, status)

	clients := body["clients"].([]any)
	require.Len(t, clients, 2)
	require.Equal(t, "Adams", clients[0].(map[string]any)["lastName"])

	pagination := body["pagination"].(map[string]any)
	require.Equal(t, float64(3), pagination["total"])
	require.Equal(t, float64(1), pagination["page"])
	require.Equal(t, float64(2), pagination["pageSize"])
	require.Equal(t, float64(2), pagination["totalPages"])

	// Garbage paging parameters fall back to the defaults
	status, body = doJSON(t, server, http.MethodGet, "/clients?page=zero&pageSize=-4", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["clients"].([]any), 3)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	server := setupServer(t)

	status, body := doJSON(t, server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])

	resp, err := server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "go_goroutines")
}

func TestAuditLogsOverHTTP(t *testing.T) {
	server := setupServer(t)

	status, _ := doJSON(t, server, http.MethodPost, "/programs", map[string]any{
		"name": "Diabetes Care",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, server, http.MethodGet, "/audit-logs", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["total"])

	logs := body["logs"].([]any)
	require.Len(t, logs, 1)
	require.Equal(t, "program.create", logs[0].(map[string]any)["action"])
}
