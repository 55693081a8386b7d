package integration

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

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
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

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
		{"P004", "seller-b", "Test Product 4", 400000, "Category C", 1},
		{"P005", "seller-x", "Test Product 5", 75000, "Category B", 8},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, seller_id, name, price_minor, category, stock)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.sellerID, p.name, p.price, p.category, p.stock,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// WriteRosterFile writes a gzipped seller roster file and returns its path.
// seller-x is deliberately absent from the default roster used by the tests.
func WriteRosterFile(t *testing.T, sellerIDs []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.gz")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create roster file: %v", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, id := range sellerIDs {
		if _, err := gzipWriter.Write([]byte(id + "\n")); err != nil {
			t.Fatalf("failed to write roster file: %v", err)
		}
	}

	return path
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_lines", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
