package service

import (
	"context"

	"agora/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartService defines operations for cart line management.
type CartService interface {
	// GetCart returns the customer's cart as per-seller groups with totals.
	GetCart(ctx context.Context, customerID string) (*model.CartView, error)

	// AddItem adds a product to the cart, snapshotting its current price.
	AddItem(ctx context.Context, req *model.AddLineRequest) (*model.CartLine, error)

	// UpdateQuantity sets the quantity of an existing cart line.
	UpdateQuantity(ctx context.Context, customerID string, lineID uuid.UUID, quantity int) error

	// RemoveLine removes one line from the cart.
	RemoveLine(ctx context.Context, customerID string, lineID uuid.UUID) error

	// Clear removes every line from the cart.
	Clear(ctx context.Context, customerID string) error
}

// CheckoutService converts a customer's cart into one order per seller.
type CheckoutService interface {
	// Checkout runs one checkout attempt: validation, per-group order
	// creation, payment routing, cart cleanup. Group-level failures are
	// reported inside the outcome, never as an error; an error return
	// means nothing was written.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutOutcome, error)
}

// OrderService defines operations for order reads.
type OrderService interface {
	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// PaymentRouter decides what happens to a created order for a given payment
// method: card capture hand-off, awaiting manual QR verification, or payment
// on delivery.
type PaymentRouter interface {
	// Route transitions the order per the payment method. Routing an
	// order that is no longer PENDING is an error, not a silent no-op.
	Route(ctx context.Context, order *model.Order, method model.PaymentMethod) (*model.RoutingResult, error)
}
