package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error shape shared by every failing response
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody acknowledges a delete operation
type SuccessBody struct {
	Success bool `json:"success"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorBody{Error: message})
}

func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, SuccessBody{Success: true})
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message)
}
