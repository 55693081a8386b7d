package repository

import (
	"context"
	"fmt"
	"time"

	"agora/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// CreateOrder persists one per-seller order in a single transaction. Each
// line's stock is checked and decremented with one conditional update, so two
// customers racing for the same product cannot oversell it. A shortfall on
// any line rolls back the whole order.
func (r *orderRepository) CreateOrder(ctx context.Context, params CreateOrderParams) (order *model.Order, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, line := range params.Lines {
		if err = r.decrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order = &model.Order{
		ID:            uuid.New(),
		CustomerID:    params.CustomerID,
		SellerID:      params.SellerID,
		Status:        model.StatusPending,
		PaymentMethod: params.PaymentMethod,
		Shipping:      params.Shipping,
		Notes:         params.Notes,
		Subtotal:      params.Totals.Subtotal,
		Tax:           params.Totals.Tax,
		ShippingFee:   params.Totals.Shipping,
		GrandTotal:    params.Totals.GrandTotal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.Code = newOrderCode(now, order.ID)

	insertOrder := `
		INSERT INTO orders (
			id, code, customer_id, seller_id, status, payment_method,
			ship_name, ship_email, ship_phone, ship_address, ship_city, ship_postal_code,
			notes, subtotal_minor, tax_minor, shipping_minor, grand_total_minor,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = tx.Exec(ctx, insertOrder,
		order.ID, order.Code, order.CustomerID, order.SellerID, order.Status, order.PaymentMethod,
		order.Shipping.Name, order.Shipping.Email, order.Shipping.Phone,
		order.Shipping.Address, order.Shipping.City, order.Shipping.PostalCode,
		order.Notes, order.Subtotal, order.Tax, order.ShippingFee, order.GrandTotal,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("seller_id", order.SellerID).
			Msg("failed to insert order")
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (id, order_id, product_id, seller_id, unit_price_minor, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	order.Items = make([]model.OrderItem, len(params.Lines))
	batch := &pgx.Batch{}
	for i, line := range params.Lines {
		order.Items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			SellerID:  line.SellerID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
		item := order.Items[i]
		batch.Queue(insertItem, item.ID, item.OrderID, item.ProductID, item.SellerID, item.UnitPrice, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(order.Items); i++ {
		if _, err = results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", order.Items[i].ProductID).
				Msg("failed to insert order item")
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_code", order.Code).
		Str("seller_id", order.SellerID).
		Int("item_count", len(order.Items)).
		Int64("grand_total", order.GrandTotal).
		Msg("order created successfully")

	return order, nil
}

// decrementStock performs the race-free check-and-decrement for one product
// row. Zero rows affected means the requested quantity exceeds availability.
func (r *orderRepository) decrementStock(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		productID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock for %s: %w", productID, err)
	}

	if tag.RowsAffected() == 0 {
		available := 0
		// Best-effort read for the error detail; the conditional update
		// above already decided the outcome.
		if scanErr := tx.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = $1`, productID).Scan(&available); scanErr != nil {
			if scanErr == pgx.ErrNoRows {
				return model.ErrProductNotFound
			}
			r.logger.Warn().Err(scanErr).Str("product_id", productID).Msg("failed to read stock for shortfall detail")
		}

		r.logger.Warn().
			Str("product_id", productID).
			Int("requested", quantity).
			Int("available", available).
			Msg("stock shortfall")

		return &model.StockShortfallError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	orderQuery := `
		SELECT id, code, customer_id, seller_id, status, payment_method,
		       ship_name, ship_email, ship_phone, ship_address, ship_city, ship_postal_code,
		       notes, subtotal_minor, tax_minor, shipping_minor, grand_total_minor,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.Code, &order.CustomerID, &order.SellerID, &order.Status, &order.PaymentMethod,
		&order.Shipping.Name, &order.Shipping.Email, &order.Shipping.Phone,
		&order.Shipping.Address, &order.Shipping.City, &order.Shipping.PostalCode,
		&order.Notes, &order.Subtotal, &order.Tax, &order.ShippingFee, &order.GrandTotal,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, seller_id, unit_price_minor, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SellerID, &item.UnitPrice, &item.Quantity)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, nil
}

// UpdateStatusIfPending transitions an order out of PENDING with a single
// conditional update. False without error means the order was not pending.
func (r *orderRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	tag, err := r.pool.Exec(ctx, query, id, status, model.StatusPending)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// newOrderCode derives the human-readable order code shown to customers and
// sellers.
func newOrderCode(t time.Time, id uuid.UUID) string {
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), id.String()[:8])
}
