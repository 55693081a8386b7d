package service

import (
	"context"
	"fmt"
	"time"

	"agora/internal/cart"
	"agora/internal/model"
	"agora/internal/pricing"
	"agora/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	calc        *pricing.Calculator
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	calc *pricing.Calculator,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		calc:        calc,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart returns the customer's cart split into per-seller groups, each with
// its own display totals, plus the whole-cart totals over the same lines.
func (s *cartService) GetCart(ctx context.Context, customerID string) (*model.CartView, error) {
	if customerID == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "customerId is required")
	}

	lines, err := s.cartRepo.GetLines(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to get cart lines")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	groups, skipped := cart.GroupBySeller(lines, "")

	view := &model.CartView{
		CustomerID: customerID,
		Groups:     make([]model.CartGroupView, 0, len(groups)),
		Skipped:    skipped,
	}
	for _, group := range groups {
		view.Groups = append(view.Groups, model.CartGroupView{
			SellerID: group.SellerID,
			Lines:    group.Lines,
			Totals:   s.calc.ComputeGroup(group),
		})
	}
	view.Totals = s.calc.Compute(cart.Flatten(groups))

	return view, nil
}

// AddItem adds a product to the cart. The product's current price becomes the
// line's unit price snapshot; adding the same product again increases the
// quantity instead of creating a second line.
func (s *cartService) AddItem(ctx context.Context, req *model.AddLineRequest) (*model.CartLine, error) {
	if req == nil {
		return nil, fmt.Errorf("add line request is nil")
	}
	if req.CustomerID == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "customerId is required")
	}
	if req.Quantity <= 0 {
		s.logger.Warn().
			Str("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	now := time.Now()
	line := &model.CartLine{
		ID:             uuid.New(),
		CustomerID:     req.CustomerID,
		ProductID:      product.ID,
		SellerID:       product.SellerID,
		UnitPrice:      product.Price,
		Quantity:       req.Quantity,
		StockAvailable: product.Stock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.cartRepo.UpsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	s.logger.Info().
		Str("customer_id", req.CustomerID).
		Str("product_id", product.ID).
		Str("seller_id", product.SellerID).
		Int("quantity", req.Quantity).
		Msg("cart line added")

	return line, nil
}

// UpdateQuantity sets the quantity of an existing cart line.
func (s *cartService) UpdateQuantity(ctx context.Context, customerID string, lineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	if err := s.cartRepo.UpdateQuantity(ctx, customerID, lineID, quantity); err != nil {
		if err == model.ErrCartLineNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to update quantity")
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	return nil
}

// RemoveLine removes one line from the cart.
func (s *cartService) RemoveLine(ctx context.Context, customerID string, lineID uuid.UUID) error {
	if err := s.cartRepo.DeleteLine(ctx, customerID, lineID); err != nil {
		if err == model.ErrCartLineNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to remove cart line")
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	return nil
}

// Clear removes every line from the customer's cart.
func (s *cartService) Clear(ctx context.Context, customerID string) error {
	if err := s.cartRepo.Clear(ctx, customerID); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().Str("customer_id", customerID).Msg("cart cleared")

	return nil
}
