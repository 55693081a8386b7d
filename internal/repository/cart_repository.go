package repository

import (
	"context"
	"fmt"

	"agora/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// cartLineColumns joins the cart line with its product so that every snapshot
// carries the advisory stock level and the owning seller.
const cartLineColumns = `
	cl.id, cl.customer_id, cl.product_id, p.seller_id, cl.unit_price_minor,
	cl.quantity, p.stock, cl.created_at, cl.updated_at
`

// GetLines retrieves the customer's cart snapshot, oldest line first.
func (r *cartRepository) GetLines(ctx context.Context, customerID string) ([]model.CartLine, error) {
	query := `
		SELECT ` + cartLineColumns + `
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.customer_id = $1
		ORDER BY cl.created_at, cl.id
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		line, err := scanCartLine(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart line rows")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// GetLine retrieves a single cart line owned by the customer.
func (r *cartRepository) GetLine(ctx context.Context, customerID string, lineID uuid.UUID) (*model.CartLine, error) {
	query := `
		SELECT ` + cartLineColumns + `
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.customer_id = $1 AND cl.id = $2
	`

	row := r.pool.QueryRow(ctx, query, customerID, lineID)
	line, err := scanCartLine(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("line_id", lineID.String()).Msg("cart line not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return &line, nil
}

// UpsertLine adds a line or increases quantity when the product is already in
// the customer's cart. The unit price snapshot of the first add wins. On a
// merge the line is updated in place with the surviving id and the summed
// quantity, so callers always see the cart's actual state.
func (r *cartRepository) UpsertLine(ctx context.Context, line *model.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, customer_id, product_id, unit_price_minor, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING id, unit_price_minor, quantity, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		line.ID, line.CustomerID, line.ProductID, line.UnitPrice, line.Quantity, line.CreatedAt).
		Scan(&line.ID, &line.UnitPrice, &line.Quantity, &line.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", line.CustomerID).
			Str("product_id", line.ProductID).
			Msg("failed to upsert cart line")
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", line.CustomerID).
		Str("product_id", line.ProductID).
		Int("quantity", line.Quantity).
		Msg("cart line upserted")

	return nil
}

// UpdateQuantity sets the quantity of an existing line.
func (r *cartRepository) UpdateQuantity(ctx context.Context, customerID string, lineID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_lines
		SET quantity = $3, updated_at = NOW()
		WHERE customer_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, customerID, lineID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to update cart line quantity")
		return fmt.Errorf("failed to update cart line quantity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartLineNotFound
	}

	return nil
}

// DeleteLine removes one line from the customer's cart.
func (r *cartRepository) DeleteLine(ctx context.Context, customerID string, lineID uuid.UUID) error {
	query := `DELETE FROM cart_lines WHERE customer_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, customerID, lineID)
	if err != nil {
		r.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to delete cart line")
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartLineNotFound
	}

	return nil
}

// DeleteLines removes the given lines after they have been converted into
// orders.
func (r *cartRepository) DeleteLines(ctx context.Context, customerID string, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}

	query := `DELETE FROM cart_lines WHERE customer_id = $1 AND id = ANY($2)`

	tag, err := r.pool.Exec(ctx, query, customerID, lineIDs)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Int("count", len(lineIDs)).
			Msg("failed to delete cart lines")
		return fmt.Errorf("failed to delete cart lines: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customerID).
		Int64("deleted", tag.RowsAffected()).
		Msg("cart lines deleted")

	return nil
}

// Clear removes every line from the customer's cart.
func (r *cartRepository) Clear(ctx context.Context, customerID string) error {
	query := `DELETE FROM cart_lines WHERE customer_id = $1`

	_, err := r.pool.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// scanCartLine scans one joined cart line row.
func scanCartLine(row pgx.Row) (model.CartLine, error) {
	var line model.CartLine
	err := row.Scan(
		&line.ID,
		&line.CustomerID,
		&line.ProductID,
		&line.SellerID,
		&line.UnitPrice,
		&line.Quantity,
		&line.StockAvailable,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	return line, err
}
