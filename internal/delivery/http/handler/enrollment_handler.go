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

type EnrollmentHandler struct {
	enrollmentUsecase usecase.EnrollmentUsecase
	validator         *validator.CustomValidator
}

func NewEnrollmentHandler(enrollmentUsecase usecase.EnrollmentUsecase, validator *validator.CustomValidator) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUsecase: enrollmentUsecase,
		validator:         validator,
	}
}

func (h *EnrollmentHandler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	enrollment, err := h.enrollmentUsecase.CreateEnrollment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEnrollmentIDsRequired:
			response.Error(w, http.StatusBadRequest, "Client ID and Program ID are required")
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		case usecase.ErrProgramNotFound:
			response.NotFound(w, "Program not found")
		case usecase.ErrProgramInactive:
			response.Error(w, http.StatusBadRequest, "Cannot enroll in inactive program")
		case usecase.ErrAlreadyEnrolled:
			response.Conflict(w, "Client is already enrolled in this program")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid enrollment status")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to create enrollment")
		}
		return
	}

	response.JSON(w, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid enrollment ID")
		return
	}

	enrollment, err := h.enrollmentUsecase.GetEnrollment(r.Context(), enrollmentID)
	if err != nil {
		if err == usecase.ErrEnrollmentNotFound {
			response.NotFound(w, "Enrollment not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch enrollment")
		return
	}

	response.JSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid enrollment ID")
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	enrollment, err := h.enrollmentUsecase.UpdateEnrollment(r.Context(), enrollmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEnrollmentNotFound:
			response.NotFound(w, "Enrollment not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid enrollment status")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrAlreadyEnrolled:
			response.Conflict(w, "Client is already enrolled in this program")
		default:
			response.InternalServerError(w, "Failed to update enrollment")
		}
		return
	}

	response.JSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid enrollment ID")
		return
	}

	if err := h.enrollmentUsecase.DeleteEnrollment(r.Context(), enrollmentID); err != nil {
		if err == usecase.ErrEnrollmentNotFound {
			response.NotFound(w, "Enrollment not found")
			return
		}
		response.InternalServerError(w, "Failed to delete enrollment")
		return
	}

	response.Success(w)
}
