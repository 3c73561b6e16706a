package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/usecase"
	"health-program-registry/pkg/response"
	"health-program-registry/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ClientHandler struct {
	clientUsecase     usecase.ClientUsecase
	enrollmentUsecase usecase.EnrollmentUsecase
	validator         *validator.CustomValidator
}

func NewClientHandler(clientUsecase usecase.ClientUsecase, enrollmentUsecase usecase.EnrollmentUsecase, validator *validator.CustomValidator) *ClientHandler {
	return &ClientHandler{
		clientUsecase:     clientUsecase,
		enrollmentUsecase: enrollmentUsecase,
		validator:         validator,
	}
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page := parseIntParam(r, "page", 1)
	pageSize := parseIntParam(r, "pageSize", 10)

	clients, err := h.clientUsecase.ListClients(r.Context(), query, page, pageSize)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch clients")
		return
	}

	response.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, h.validator.FormatError(err))
		return
	}

	client, err := h.clientUsecase.CreateClient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClientFieldsRequired:
			response.Error(w, http.StatusBadRequest, "First name, last name, date of birth, and gender are required")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to create client")
		}
		return
	}

	response.JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := h.clientUsecase.GetClient(r.Context(), clientID)
	if err != nil {
		if err == usecase.ErrClientNotFound {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch client")
		return
	}

	response.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var req dto.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clientUsecase.UpdateClient(r.Context(), clientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to update client")
		}
		return
	}

	response.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	if err := h.clientUsecase.DeleteClient(r.Context(), clientID); err != nil {
		if err == usecase.ErrClientNotFound {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalServerError(w, "Failed to delete client")
		return
	}

	response.Success(w)
}

func (h *ClientHandler) ListClientEnrollments(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	enrollments, err := h.enrollmentUsecase.ListEnrollmentsForClient(r.Context(), clientID)
	if err != nil {
		if err == usecase.ErrClientNotFound {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch enrollments")
		return
	}

	response.JSON(w, http.StatusOK, enrollments)
}

// parseIntParam reads a positive integer query parameter, falling back to the
// default on absence or garbage
func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
