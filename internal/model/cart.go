package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLine represents one product a customer intends to buy. The unit price is
// a snapshot taken at add-to-cart time, in integer minor currency units.
type CartLine struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CustomerID     string    `json:"customerId" db:"customer_id"`
	ProductID      string    `json:"productId" db:"product_id"`
	SellerID       string    `json:"sellerId" db:"seller_id"`
	UnitPrice      int64     `json:"unitPrice" db:"unit_price_minor"`
	Quantity       int       `json:"quantity" db:"quantity"`
	StockAvailable int       `json:"stockAvailable" db:"stock_available"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Subtotal returns the line's price contribution in minor units.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// SellerGroup is the subset of a cart belonging to one seller, the unit of
// order creation. It is a transient view computed at checkout time, never
// persisted on its own.
type SellerGroup struct {
	SellerID string     `json:"sellerId"`
	Lines    []CartLine `json:"lines"`
}

// Subtotal returns the sum of line subtotals for the group.
func (g SellerGroup) Subtotal() int64 {
	var total int64
	for _, line := range g.Lines {
		total += line.Subtotal()
	}
	return total
}

// CheckoutTotals holds derived pricing for one seller group or for the whole
// cart. All amounts are integer minor currency units; grand total is always
// recomputed from its inputs, never stored independently.
type CheckoutTotals struct {
	Subtotal   int64 `json:"subtotal"`
	Tax        int64 `json:"tax"`
	Shipping   int64 `json:"shipping"`
	GrandTotal int64 `json:"grandTotal"`
}

// AddLineRequest is the payload for adding a product to the cart.
type AddLineRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

// UpdateQuantityRequest is the payload for changing a cart line's quantity.
type UpdateQuantityRequest struct {
	CustomerID string `json:"customerId"`
	Quantity   int    `json:"quantity"`
}

// CartGroupView is one seller's slice of the cart with its display totals.
type CartGroupView struct {
	SellerID string         `json:"sellerId"`
	Lines    []CartLine     `json:"lines"`
	Totals   CheckoutTotals `json:"totals"`
}

// CartView is the customer-facing cart representation: per-seller groups with
// their own totals, the whole-cart totals, and any lines that cannot be
// checked out because they carry no seller reference.
type CartView struct {
	CustomerID string          `json:"customerId"`
	Groups     []CartGroupView `json:"groups"`
	Totals     CheckoutTotals  `json:"totals"`
	Skipped    []CartLine      `json:"skipped,omitempty"`
}
