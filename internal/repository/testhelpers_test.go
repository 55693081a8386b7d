package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL test container with the full schema.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price_minor BIGINT NOT NULL CHECK (price_minor >= 0),
			category TEXT NOT NULL,
			stock INTEGER NOT NULL CHECK (stock >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS cart_lines (
			id UUID PRIMARY KEY,
			customer_id TEXT NOT NULL,
			product_id TEXT NOT NULL REFERENCES products(id),
			unit_price_minor BIGINT NOT NULL CHECK (unit_price_minor >= 0),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (customer_id, product_id)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			customer_id TEXT NOT NULL,
			seller_id TEXT NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			ship_name TEXT NOT NULL,
			ship_email TEXT NOT NULL,
			ship_phone TEXT NOT NULL,
			ship_address TEXT NOT NULL,
			ship_city TEXT NOT NULL,
			ship_postal_code TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			subtotal_minor BIGINT NOT NULL,
			tax_minor BIGINT NOT NULL,
			shipping_minor BIGINT NOT NULL,
			grand_total_minor BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL REFERENCES products(id),
			seller_id TEXT NOT NULL,
			unit_price_minor BIGINT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		);

		CREATE INDEX IF NOT EXISTS idx_cart_lines_customer_id ON cart_lines(customer_id);
		CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProducts inserts test catalogue data.
func seedProducts(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	products := []struct {
		id       string
		sellerID string
		name     string
		price    int64
		category string
		stock    int
	}{
		{"P001", "seller-a", "Test Product 1", 100000, "Category A", 10},
		{"P002", "seller-a", "Test Product 2", 50000, "Category B", 5},
		{"P003", "seller-b", "Test Product 3", 250000, "Category A", 3},
		{"P004", "seller-c", "Test Product 4", 400000, "Category C", 1},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, seller_id, name, price_minor, category, stock)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.sellerID, p.name, p.price, p.category, p.stock,
		)
		require.NoError(t, err)
	}
}

// productStock reads the current stock for a product.
func productStock(t *testing.T, pool *pgxpool.Pool, productID string) int {
	var stock int
	err := pool.QueryRow(context.Background(),
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}
