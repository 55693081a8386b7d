package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"agora/internal/model"
	"agora/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests. A partial success is a 200
// with status PARTIALLY_COMPLETED in the body; only pre-write validation
// failures produce an error status.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeValidation, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	outcome, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, validationErr.Error(), h.logger)
			return
		}

		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, r, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message, h.logger)
			return
		}

		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "checkout failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
