package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agora/internal/handler"
	"agora/internal/model"
	"agora/internal/pricing"
	"agora/internal/repository"
	"agora/internal/router"
	"agora/internal/seller"
	"agora/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	ctx := context.Background()

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	// Initialize seller roster; seller-x is deliberately left off so that
	// its products cannot be checked out.
	rosterPath := WriteRosterFile(t, []string{"seller-a", "seller-b", "seller-c"})
	rosterConfig := &seller.RosterConfig{
		FilePaths: []string{rosterPath},
	}
	roster, err := seller.NewRoster(ctx, rosterConfig, seller.NewFileLoader(logger), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		roster.Close()
	})

	calc := pricing.NewCalculator(1000, 30000, 500000)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, calc, logger)
	paymentRouter := service.NewPaymentRouter(orderRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartRepo, orderRepo, roster, paymentRouter, calc,
		service.CardRouteRepresentative, logger,
	)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Create router
	return router.New(productHandler, cartHandler, checkoutHandler, orderHandler, "test-api-key", logger)
}

// doRequest performs an authenticated JSON request against the test server.
func doRequest(t *testing.T, server http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", "test-api-key")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

// addCartItem adds a product to a customer's cart and returns the created line.
func addCartItem(t *testing.T, server http.Handler, customerID, productID string, quantity int) model.CartLine {
	t.Helper()

	w := doRequest(t, server, http.MethodPost, "/api/cart/items", model.AddLineRequest{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	require.Equal(t, http.StatusCreated, w.Code, "add cart item: %s", w.Body.String())

	var line model.CartLine
	require.NoError(t, json.NewDecoder(w.Body).Decode(&line))
	return line
}

func testShippingInfo() model.ShippingInfo {
	return model.ShippingInfo{
		Name:       "Test Customer",
		Email:      "customer@example.com",
		Phone:      "+84900000000",
		Address:    "1 Test Street",
		City:       "Hanoi",
		PostalCode: "100000",
	}
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/products returns all products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := doRequest(t, server, http.MethodGet, "/api/products", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 5)
	})

	t.Run("GET /api/products with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := doRequest(t, server, http.MethodGet, "/api/products?limit=2&offset=0", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 2)
	})

	t.Run("GET /api/products/{id} returns specific product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := doRequest(t, server, http.MethodGet, "/api/products/P003", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
		assert.Equal(t, "P003", product.ID)
		assert.Equal(t, "seller-b", product.SellerID)
		assert.Equal(t, int64(250000), product.Price)
	})

	t.Run("GET /api/products/{id} returns 404 for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := doRequest(t, server, http.MethodGet, "/api/products/NOPE", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, model.ErrCodeProductNotFound, errResp.Error)
	})

	t.Run("request without API key returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("health check requires no API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCartAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("cart groups lines by seller with totals", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		addCartItem(t, server, "cust-1", "P001", 2) // seller-a, 200000
		addCartItem(t, server, "cust-1", "P003", 1) // seller-b, 250000

		w := doRequest(t, server, http.MethodGet, "/api/cart?customerId=cust-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var view model.CartView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

		require.Len(t, view.Groups, 2)
		assert.Equal(t, "seller-a", view.Groups[0].SellerID)
		assert.Equal(t, model.CheckoutTotals{
			Subtotal:   200000,
			Tax:        20000,
			Shipping:   30000,
			GrandTotal: 250000,
		}, view.Groups[0].Totals)
		assert.Equal(t, "seller-b", view.Groups[1].SellerID)
		assert.Equal(t, int64(250000), view.Groups[1].Totals.Subtotal)

		// Whole-cart totals span every line.
		assert.Equal(t, int64(450000), view.Totals.Subtotal)
	})

	t.Run("adding the same product twice merges the line", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		first := addCartItem(t, server, "cust-1", "P002", 2)
		second := addCartItem(t, server, "cust-1", "P002", 1)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 3, second.Quantity)
	})

	t.Run("PATCH /api/cart/items/{id} updates quantity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		line := addCartItem(t, server, "cust-1", "P001", 1)

		w := doRequest(t, server, http.MethodPatch, "/api/cart/items/"+line.ID.String(), model.UpdateQuantityRequest{
			CustomerID: "cust-1",
			Quantity:   4,
		})
		assert.Equal(t, http.StatusNoContent, w.Code)

		var quantity int
		err := testDB.Pool.QueryRow(context.Background(),
			"SELECT quantity FROM cart_lines WHERE id = $1", line.ID).Scan(&quantity)
		require.NoError(t, err)
		assert.Equal(t, 4, quantity)
	})

	t.Run("DELETE /api/cart/items/{id} removes the line", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		line := addCartItem(t, server, "cust-1", "P001", 1)

		w := doRequest(t, server, http.MethodDelete,
			fmt.Sprintf("/api/cart/items/%s?customerId=cust-1", line.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(t, server, http.MethodDelete,
			fmt.Sprintf("/api/cart/items/%s?customerId=cust-1", line.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DELETE /api/cart clears only that customer's cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		addCartItem(t, server, "cust-1", "P001", 1)
		addCartItem(t, server, "cust-2", "P002", 1)

		w := doRequest(t, server, http.MethodDelete, "/api/cart?customerId=cust-1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		var count int
		err := testDB.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM cart_lines WHERE customer_id = 'cust-1'").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)

		err = testDB.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM cart_lines WHERE customer_id = 'cust-2'").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("adding unknown product returns 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		w := doRequest(t, server, http.MethodPost, "/api/cart/items", model.AddLineRequest{
			CustomerID: "cust-1",
			ProductID:  "NOPE",
			Quantity:   1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/orders/{id} returns a created order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		addCartItem(t, server, "cust-1", "P001", 1)

		w := doRequest(t, server, http.MethodPost, "/api/checkout", model.CheckoutRequest{
			CustomerID:    "cust-1",
			Shipping:      testShippingInfo(),
			PaymentMethod: model.PaymentCOD,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var outcome model.CheckoutOutcome
		require.NoError(t, json.NewDecoder(w.Body).Decode(&outcome))
		require.Len(t, outcome.CreatedOrders, 1)
		created := outcome.CreatedOrders[0]

		w = doRequest(t, server, http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var order model.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
		assert.Equal(t, created.ID, order.ID)
		assert.Equal(t, created.Code, order.Code)
		assert.Equal(t, "seller-a", order.SellerID)
		assert.Equal(t, model.StatusConfirmedPendingDelivery, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "P001", order.Items[0].ProductID)
	})

	t.Run("GET /api/orders/{id} returns 404 for unknown order", func(t *testing.T) {
		w := doRequest(t, server, http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
