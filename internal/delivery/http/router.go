package http

import (
	"net/http"

	"health-program-registry/internal/delivery/http/handler"
	"health-program-registry/internal/delivery/http/middleware"
	"health-program-registry/internal/service"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	clientHandler     *handler.ClientHandler
	programHandler    *handler.ProgramHandler
	enrollmentHandler *handler.EnrollmentHandler
	externalHandler   *handler.ExternalHandler
	auditLogHandler   *handler.AuditLogHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	metricsService    *service.MetricsService
}

func NewRouter(
	clientHandler *handler.ClientHandler,
	programHandler *handler.ProgramHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	externalHandler *handler.ExternalHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	metricsService *service.MetricsService,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		clientHandler:     clientHandler,
		programHandler:    programHandler,
		enrollmentHandler: enrollmentHandler,
		externalHandler:   externalHandler,
		auditLogHandler:   auditLogHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		metricsMiddleware: metricsMiddleware,
		metricsService:    metricsService,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check and metrics
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsService.Handler()).Methods(http.MethodGet)

	// Client registry
	r.router.HandleFunc("/clients", r.clientHandler.ListClients).Methods(http.MethodGet)
	r.router.HandleFunc("/clients", r.clientHandler.CreateClient).Methods(http.MethodPost)
	r.router.HandleFunc("/clients/{id}", r.clientHandler.GetClient).Methods(http.MethodGet)
	r.router.HandleFunc("/clients/{id}", r.clientHandler.UpdateClient).Methods(http.MethodPut)
	r.router.HandleFunc("/clients/{id}", r.clientHandler.DeleteClient).Methods(http.MethodDelete)
	r.router.HandleFunc("/clients/{id}/enrollments", r.clientHandler.ListClientEnrollments).Methods(http.MethodGet)

	// Health programs
	r.router.HandleFunc("/programs", r.programHandler.ListPrograms).Methods(http.MethodGet)
	r.router.HandleFunc("/programs", r.programHandler.CreateProgram).Methods(http.MethodPost)
	r.router.HandleFunc("/programs/{id}", r.programHandler.GetProgram).Methods(http.MethodGet)
	r.router.HandleFunc("/programs/{id}", r.programHandler.UpdateProgram).Methods(http.MethodPut)
	r.router.HandleFunc("/programs/{id}", r.programHandler.DeleteProgram).Methods(http.MethodDelete)
	r.router.HandleFunc("/programs/{id}/enrollments", r.programHandler.ListProgramEnrollments).Methods(http.MethodGet)

	// Enrollments
	r.router.HandleFunc("/enrollments", r.enrollmentHandler.CreateEnrollment).Methods(http.MethodPost)
	r.router.HandleFunc("/enrollments/{id}", r.enrollmentHandler.GetEnrollment).Methods(http.MethodGet)
	r.router.HandleFunc("/enrollments/{id}", r.enrollmentHandler.UpdateEnrollment).Methods(http.MethodPut)
	r.router.HandleFunc("/enrollments/{id}", r.enrollmentHandler.DeleteEnrollment).Methods(http.MethodDelete)

	// External read-only projection
	r.router.HandleFunc("/external/clients/{id}", r.externalHandler.GetClientProfile).Methods(http.MethodGet)

	// Audit trail
	r.router.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
