package handler

import (
	"encoding/json"
	"net/http"

	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/usecase"
	"health-program-registry/pkg/response"
	"health-program-registry/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Program detail view shows at most this many recent enrollments
const defaultProgramEnrollmentLimit = 5

type ProgramHandler struct {
	programUsecase    usecase.ProgramUsecase
	enrollmentUsecase usecase.EnrollmentUsecase
	validator         *validator.CustomValidator
}

func NewProgramHandler(programUsecase usecase.ProgramUsecase, enrollmentUsecase usecase.EnrollmentUsecase, validator *validator.CustomValidator) *ProgramHandler {
	return &ProgramHandler{
		programUsecase:    programUsecase,
		enrollmentUsecase: enrollmentUsecase,
		validator:         validator,
	}
}

func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	programs, err := h.programUsecase.ListPrograms(r.Context(), query, includeInactive)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch programs")
		return
	}

	response.JSON(w, http.StatusOK, programs)
}

func (h *ProgramHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, h.validator.FormatError(err))
		return
	}

	program, err := h.programUsecase.CreateProgram(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrProgramNameRequired:
			response.Error(w, http.StatusBadRequest, "Program name is required")
		case usecase.ErrProgramNameExists:
			response.Conflict(w, "A program with this name already exists")
		default:
			response.InternalServerError(w, "Failed to create program")
		}
		return
	}

	response.JSON(w, http.StatusCreated, program)
}

func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	program, err := h.programUsecase.GetProgram(r.Context(), programID)
	if err != nil {
		if err == usecase.ErrProgramNotFound {
			response.NotFound(w, "Program not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch program")
		return
	}

	response.JSON(w, http.StatusOK, program)
}

func (h *ProgramHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	var req dto.UpdateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	program, err := h.programUsecase.UpdateProgram(r.Context(), programID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProgramNotFound:
			response.NotFound(w, "Program not found")
		case usecase.ErrProgramNameExists:
			response.Conflict(w, "A program with this name already exists")
		default:
			response.InternalServerError(w, "Failed to update program")
		}
		return
	}

	response.JSON(w, http.StatusOK, program)
}

func (h *ProgramHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	if err := h.programUsecase.DeleteProgram(r.Context(), programID); err != nil {
		switch err {
		case usecase.ErrProgramNotFound:
			response.NotFound(w, "Program not found")
		case usecase.ErrProgramHasEnrollments:
			response.Error(w, http.StatusBadRequest, "Cannot delete program with active enrollments")
		default:
			response.InternalServerError(w, "Failed to delete program")
		}
		return
	}

	response.Success(w)
}

func (h *ProgramHandler) ListProgramEnrollments(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	limit := parseIntParam(r, "limit", defaultProgramEnrollmentLimit)

	enrollments, err := h.enrollmentUsecase.ListEnrollmentsForProgram(r.Context(), programID, limit)
	if err != nil {
		if err == usecase.ErrProgramNotFound {
			response.NotFound(w, "Program not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch enrollments")
		return
	}

	response.JSON(w, http.StatusOK, enrollments)
}
