package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request. Details carries the
// underlying error string or per-field validation messages.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	JSON(w, statusCode, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Dados inválidos.", errors)
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Requisição inválida."
	}
	Error(w, http.StatusBadRequest, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Recurso não encontrado."
	}
	Error(w, http.StatusNotFound, message, nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Muitas requisições. Tente novamente em instantes.", nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Erro interno do servidor."
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

// File writes a downloadable attachment.
func File(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
