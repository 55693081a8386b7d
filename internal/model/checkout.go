package model

import "github.com/google/uuid"

// CheckoutStatus classifies the aggregate result of a checkout attempt.
type CheckoutStatus string

const (
	CheckoutCompleted          CheckoutStatus = "COMPLETED"
	CheckoutPartiallyCompleted CheckoutStatus = "PARTIALLY_COMPLETED"
	CheckoutFailed             CheckoutStatus = "FAILED"
)

// CheckoutRequest is the request payload for a checkout attempt. CustomerID
// is always explicit; there is no ambient session identity. SellerID, when
// set, restricts the attempt to that seller's lines in a mixed cart.
type CheckoutRequest struct {
	CustomerID    string        `json:"customerId"`
	SellerID      string        `json:"sellerId,omitempty"`
	Shipping      ShippingInfo  `json:"shipping"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes,omitempty"`
}

// GroupFailure records why one seller group could not be converted into an
// order. Code is one of the domain error codes.
type GroupFailure struct {
	SellerID string `json:"sellerId"`
	Code     string `json:"code"`
	Reason   string `json:"reason"`
}

// CardHandoff is the payload the caller uses to proceed to a separate
// card-capture step. It does not itself move money.
type CardHandoff struct {
	OrderID    uuid.UUID `json:"orderId"`
	OrderCode  string    `json:"orderCode"`
	GrandTotal int64     `json:"grandTotal"`
}

// RoutingWarning reports a payment-routing problem on an order that was
// already created. The order itself is not undone.
type RoutingWarning struct {
	OrderID uuid.UUID `json:"orderId"`
	Reason  string    `json:"reason"`
}

// RoutingResult describes what the payment router did with one order.
type RoutingResult struct {
	OrderID     uuid.UUID   `json:"orderId"`
	OrderCode   string      `json:"orderCode"`
	Status      OrderStatus `json:"status"`
	CardHandoff *CardHandoff `json:"cardHandoff,omitempty"`
}

// CheckoutOutcome is the orchestrator's aggregate result. It is returned to
// the caller and never persisted. SuccessCount always equals
// len(CreatedOrders), and SuccessCount+len(Failures) equals TotalGroups.
type CheckoutOutcome struct {
	Status        CheckoutStatus   `json:"status"`
	TotalGroups   int              `json:"totalGroups"`
	SuccessCount  int              `json:"successCount"`
	CreatedOrders []Order          `json:"createdOrders"`
	Failures      []GroupFailure   `json:"failures,omitempty"`
	SkippedLines  []uuid.UUID      `json:"skippedLines,omitempty"`
	CardHandoffs  []CardHandoff    `json:"cardHandoffs,omitempty"`
	Warnings      []RoutingWarning `json:"warnings,omitempty"`
}
