package handler

import (
	"encoding/json"
	"net/http"

	"agora/internal/middleware"
	"agora/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error response carrying the request's
// correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())
	logger.Error().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// domainStatus maps a domain error code to its HTTP status.
func domainStatus(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeLineNotFound:
		return http.StatusNotFound
	case model.ErrCodeCartEmpty, model.ErrCodeValidation, model.ErrCodeInvalidQuantity,
		model.ErrCodePaymentMethod, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
