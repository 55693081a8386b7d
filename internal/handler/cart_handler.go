package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"agora/internal/model"
	"agora/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart?customerId={id} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "customerId is required", h.logger)
		return
	}

	view, err := h.service.GetCart(r.Context(), customerID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get cart")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	line, err := h.service.AddItem(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to add cart line")
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

// UpdateItem handles PATCH /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.CustomerID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "customerId is required", h.logger)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), req.CustomerID, lineID, req.Quantity); err != nil {
		h.writeServiceError(w, r, err, "failed to update cart line")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/cart/items/{id}?customerId={id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID, ok := h.lineID(w, r)
	if !ok {
		return
	}

	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "customerId is required", h.logger)
		return
	}

	if err := h.service.RemoveLine(r.Context(), customerID, lineID); err != nil {
		h.writeServiceError(w, r, err, "failed to remove cart line")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart?customerId={id} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "customerId is required", h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		h.writeServiceError(w, r, err, "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lineID extracts the cart line id from /api/cart/items/{id}.
func (h *CartHandler) lineID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if idStr == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "cart line ID is required", h.logger)
		return uuid.Nil, false
	}

	lineID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid cart line ID format", h.logger)
		return uuid.Nil, false
	}

	return lineID, true
}

func (h *CartHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, r, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message, h.logger)
		return
	}
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, h.logger)
}
