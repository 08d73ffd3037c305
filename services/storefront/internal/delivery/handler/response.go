package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront/libs/go/auth"
	"storefront/services/storefront/internal/application/command"
	"storefront/services/storefront/internal/application/query"
)

const maxBodyBytes = 1 << 20

// Response represents the standard API response format.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func sendJSONError(w http.ResponseWriter, errMsg string, statusCode int) {
	writeJSON(w, Response{
		Status:  "error",
		Message: errMsg,
		Code:    statusCode,
	}, statusCode)
}

func sendJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	writeJSON(w, Response{
		Status: "success",
		Data:   data,
		Code:   statusCode,
	}, statusCode)
}

func writeJSON(w http.ResponseWriter, body any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and answered with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidDate), errors.Is(err, query.ErrInvalidDateRange), command.IsValidationError(err):
		sendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrForbidden):
		sendJSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		sendJSONError(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, context.DeadlineExceeded):
		h.requestLogger(r).Warn("request timed out", zap.Error(err))
		sendJSONError(w, "Request timed out", http.StatusGatewayTimeout)
	default:
		h.requestLogger(r).Error("request failed", zap.Error(err))
		sendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
