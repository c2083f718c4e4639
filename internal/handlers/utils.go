package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commentree/apiserver/internal/services"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	codeInternalError     = "internal_error"
	codeRequestValidation = "request_validation_error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Detail  []ErrorDetail `json:"detail,omitempty"`
}

// ErrorDetail describes one invalid request field.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func writeValidationError(w http.ResponseWriter, details []ErrorDetail) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    codeRequestValidation,
		Message: "Request validation error",
		Detail:  details,
	})
}

// writeServiceError answers with the status matching a domain error code.
// Anything that is not a domain error is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var domainErr *services.Error
	if !errors.As(err, &domainErr) {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternalError, "Internal server error")
		return
	}
	writeError(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case services.ErrObjectNotFound.Code:
		return http.StatusNotFound
	case services.ErrUnauthenticated.Code:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
