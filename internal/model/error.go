package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeCartEmpty        = "CART_EMPTY"
	ErrCodeStockShortfall   = "STOCK_SHORTFALL"
	ErrCodeSellerNotFound   = "SELLER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeLineNotFound     = "CART_LINE_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodePaymentMethod    = "INVALID_PAYMENT_METHOD"
	ErrCodePersistence      = "PERSISTENCE_ERROR"
	ErrCodeRouting          = "ROUTING_ERROR"
	ErrCodeCancelled        = "CHECKOUT_CANCELLED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable machine-readable
// code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCartEmpty            = NewDomainError(ErrCodeCartEmpty, "Cart has no lines eligible for checkout")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartLineNotFound     = NewDomainError(ErrCodeLineNotFound, "Cart line not found")
	ErrSellerNotFound       = NewDomainError(ErrCodeSellerNotFound, "Seller is not registered in the marketplace roster")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodePaymentMethod, "Payment method must be CARD, QR or COD")
)

// ValidationError reports missing or invalid checkout input, detected before
// any order is written.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required shipping fields: %v", e.Fields)
}

// StockShortfallError reports a line item whose requested quantity exceeds
// the currently available stock. It fails the whole per-seller order.
type StockShortfallError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockShortfallError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// RoutingError reports a payment routing failure on an already-created order.
type RoutingError struct {
	OrderCode string
	Status    OrderStatus
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("order %s cannot be routed: status is %s, want %s",
		e.OrderCode, e.Status, StatusPending)
}
