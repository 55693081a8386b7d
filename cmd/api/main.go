package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/handler"
	"agora/internal/pricing"
	"agora/internal/repository"
	"agora/internal/router"
	"agora/internal/seller"
	"agora/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting agora marketplace API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize seller roster loader with S3 and local fallback
	fileLoader := seller.NewFileLoader(logger)
	var s3Loader seller.Loader

	if cfg.Sellers.S3Enabled {
		s3Loader, err = seller.NewS3Loader(ctx, cfg.Sellers.S3Bucket, cfg.Sellers.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 roster loader, using local file system only")
			s3Loader = nil
		}
	} else {
		logger.Info().Msg("using local file system for seller roster (S3 disabled)")
	}

	rosterLoader := seller.NewFallbackLoader(s3Loader, fileLoader, cfg.Sellers.S3Prefix, cfg.Sellers.S3Enabled, logger)

	// Initialize seller roster
	roster, err := seller.NewRoster(ctx, &seller.RosterConfig{FilePaths: cfg.Sellers.FilePaths}, rosterLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize seller roster: %w", err)
	}
	defer roster.Close()

	// Initialize pricing calculator
	calc := pricing.NewCalculator(
		cfg.Pricing.TaxRateBasisPoints,
		cfg.Pricing.ShippingFee,
		cfg.Pricing.FreeShippingThreshold,
	)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, calc, logger)
	paymentRouter := service.NewPaymentRouter(orderRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartRepo, orderRepo, roster, paymentRouter, calc,
		service.CardRoutingStrategy(cfg.Checkout.CardRouting), logger,
	)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, checkoutHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
