package repository

import (
	"context"

	"agora/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartRepository defines the interface for cart line data access. Cart lines
// are keyed by the owning customer; there is no ambient session identity.
type CartRepository interface {
	// GetLines retrieves the customer's cart snapshot, oldest line first.
	GetLines(ctx context.Context, customerID string) ([]model.CartLine, error)

	// GetLine retrieves a single cart line owned by the customer.
	GetLine(ctx context.Context, customerID string, lineID uuid.UUID) (*model.CartLine, error)

	// UpsertLine adds a line or, when the customer already has the product
	// in the cart, increases its quantity.
	UpsertLine(ctx context.Context, line *model.CartLine) error

	// UpdateQuantity sets the quantity of an existing line.
	UpdateQuantity(ctx context.Context, customerID string, lineID uuid.UUID, quantity int) error

	// DeleteLine removes one line from the customer's cart.
	DeleteLine(ctx context.Context, customerID string, lineID uuid.UUID) error

	// DeleteLines removes the given lines, typically after they have been
	// converted into orders.
	DeleteLines(ctx context.Context, customerID string, lineIDs []uuid.UUID) error

	// Clear removes every line from the customer's cart.
	Clear(ctx context.Context, customerID string) error
}

// CreateOrderParams carries everything needed to persist one per-seller
// order: the group's line snapshot, the shared shipping info, and the
// pre-computed totals.
type CreateOrderParams struct {
	CustomerID    string
	SellerID      string
	Lines         []model.CartLine
	Shipping      model.ShippingInfo
	Notes         string
	PaymentMethod model.PaymentMethod
	Totals        model.CheckoutTotals
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateOrder persists one order with its line items in a single
	// transaction. Stock is re-checked and decremented atomically per
	// product row; a shortfall on any line rolls back the whole order and
	// returns a *model.StockShortfallError.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*model.Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatusIfPending transitions an order out of PENDING. It
	// returns false, without error, when the order is no longer pending.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)
}
