// Package httputil holds the JSON response helpers shared by the primary
// API and the companion's local surface.
package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the error envelope every endpoint returns. Cause carries
// the underlying error text when the handler chooses to expose it.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, cause error) {
	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}
	if cause != nil {
		resp.Cause = cause.Error()
	}
	writeJSON(w, statusCode, resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	if body == nil {
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(body)
}
