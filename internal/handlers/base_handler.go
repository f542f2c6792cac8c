// Package handlers implements the HTTP boundary: request decoding, calling
// the services, and mapping typed domain errors to responses.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response with the given code
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, code string) {
	h.RespondJSON(w, status, map[string]string{"error": code})
}

// RespondDomainError maps a service-layer error to its HTTP status and
// machine-readable code. The cause of an internal fault is logged, never sent.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal {
		h.Logger.Error("internal failure", zap.Error(appErr.Unwrap()))
	}
	h.RespondError(w, appErr.HTTPStatus(), appErr.Code)
}
