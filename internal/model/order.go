package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod selects how a checkout is paid for.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "CARD"
	PaymentQR   PaymentMethod = "QR"
	PaymentCOD  PaymentMethod = "COD"
)

// Valid reports whether the payment method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentQR, PaymentCOD:
		return true
	}
	return false
}

// OrderStatus tracks an order through payment routing and fulfilment.
type OrderStatus string

const (
	// StatusPending is the initial status of every created order.
	StatusPending OrderStatus = "PENDING"

	// StatusAwaitingVerification marks a QR order waiting for manual
	// payment confirmation.
	StatusAwaitingVerification OrderStatus = "AWAITING_VERIFICATION"

	// StatusConfirmedPendingDelivery marks a COD order whose payment is
	// deferred to delivery.
	StatusConfirmedPendingDelivery OrderStatus = "CONFIRMED_PENDING_DELIVERY"
)

// ShippingInfo is the delivery destination shared by every order created in
// one checkout attempt.
type ShippingInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// MissingFields returns the names of required shipping fields that are empty.
func (s ShippingInfo) MissingFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"postalCode", s.PostalCode},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Order is the durable artifact of one successful per-seller checkout. It is
// immutable once created except for status and payment-related fields.
type Order struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Code          string        `json:"code" db:"code"`
	CustomerID    string        `json:"customerId" db:"customer_id"`
	SellerID      string        `json:"sellerId" db:"seller_id"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Shipping      ShippingInfo  `json:"shipping"`
	Notes         string        `json:"notes,omitempty" db:"notes"`
	Subtotal      int64         `json:"subtotal" db:"subtotal_minor"`
	Tax           int64         `json:"tax" db:"tax_minor"`
	ShippingFee   int64         `json:"shippingFee" db:"shipping_minor"`
	GrandTotal    int64         `json:"grandTotal" db:"grand_total_minor"`
	Items         []OrderItem   `json:"items"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a value snapshot of a cart line at order-creation time; it does
// not reference the live cart line.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	SellerID  string    `json:"sellerId" db:"seller_id"`
	UnitPrice int64     `json:"unitPrice" db:"unit_price_minor"`
	Quantity  int       `json:"quantity" db:"quantity"`
}
