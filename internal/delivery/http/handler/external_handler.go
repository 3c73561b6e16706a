package handler

import (
	"net/http"

	"health-program-registry/internal/usecase"
	"health-program-registry/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ExternalHandler serves the data-minimized client projection for
// third-party consumers.
type ExternalHandler struct {
	externalUsecase usecase.ExternalProfileUsecase
}

func NewExternalHandler(externalUsecase usecase.ExternalProfileUsecase) *ExternalHandler {
	return &ExternalHandler{
		externalUsecase: externalUsecase,
	}
}

func (h *ExternalHandler) GetClientProfile(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	profile, err := h.externalUsecase.GetClientProfile(r.Context(), clientID)
	if err != nil {
		if err == usecase.ErrClientNotFound {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch client profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}
