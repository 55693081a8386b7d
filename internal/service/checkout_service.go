package service

import (
	"context"
	"errors"
	"fmt"

	"agora/internal/cart"
	"agora/internal/model"
	"agora/internal/pricing"
	"agora/internal/repository"
	"agora/internal/seller"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CardRoutingStrategy selects how CARD checkouts with multiple created orders
// reach the capture step.
type CardRoutingStrategy string

const (
	// CardRouteRepresentative hands off only the most recently created
	// order; the others stay unpaid until captured separately. This
	// mirrors the marketplace's historical single-hand-off behaviour.
	CardRouteRepresentative CardRoutingStrategy = "representative"

	// CardRoutePerOrder hands off every created order sequentially.
	CardRoutePerOrder CardRoutingStrategy = "per_order"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	roster      seller.Roster
	router      PaymentRouter
	calc        *pricing.Calculator
	cardRouting CardRoutingStrategy
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout orchestrator.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	roster seller.Roster,
	router PaymentRouter,
	calc *pricing.Calculator,
	cardRouting CardRoutingStrategy,
	logger zerolog.Logger,
) CheckoutService {
	if cardRouting == "" {
		cardRouting = CardRouteRepresentative
	}
	return &checkoutService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		roster:      roster,
		router:      router,
		calc:        calc,
		cardRouting: cardRouting,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout runs one checkout attempt. Validation failures abort before any
// write. Per-group order creation is sequential and independent: one seller's
// failure never stops the remaining groups. Cart lines belonging to
// successfully created orders are removed from the cart afterwards, so a
// repeat attempt cannot double-order them.
func (s *checkoutService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutOutcome, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.GetLines(ctx, req.CustomerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", req.CustomerID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	groups, skipped := cart.GroupBySeller(lines, req.SellerID)
	if len(groups) == 0 {
		s.logger.Warn().
			Str("customer_id", req.CustomerID).
			Int("skipped_lines", len(skipped)).
			Msg("checkout attempted with no eligible cart lines")
		return nil, model.ErrCartEmpty
	}

	outcome := &model.CheckoutOutcome{
		TotalGroups: len(groups),
	}
	for _, line := range skipped {
		outcome.SkippedLines = append(outcome.SkippedLines, line.ID)
	}

	succeeded := s.commitGroups(ctx, req, groups, outcome)

	outcome.SuccessCount = len(outcome.CreatedOrders)
	switch {
	case outcome.SuccessCount == 0:
		outcome.Status = model.CheckoutFailed
	case outcome.SuccessCount == outcome.TotalGroups:
		outcome.Status = model.CheckoutCompleted
	default:
		outcome.Status = model.CheckoutPartiallyCompleted
	}

	if outcome.SuccessCount > 0 {
		s.routePayments(ctx, req.PaymentMethod, outcome)
		s.cleanupCart(ctx, req.CustomerID, succeeded, outcome)
	}

	s.logger.Info().
		Str("customer_id", req.CustomerID).
		Str("status", string(outcome.Status)).
		Int("total_groups", outcome.TotalGroups).
		Int("success_count", outcome.SuccessCount).
		Int("failures", len(outcome.Failures)).
		Msg("checkout attempt finished")

	return outcome, nil
}

// validateRequest rejects the whole attempt before any write.
func (s *checkoutService) validateRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("checkout request is nil")
	}
	if req.CustomerID == "" {
		return model.NewDomainError(model.ErrCodeValidation, "customerId is required")
	}
	if !req.PaymentMethod.Valid() {
		return model.ErrInvalidPaymentMethod
	}
	if missing := req.Shipping.MissingFields(); len(missing) > 0 {
		s.logger.Warn().
			Str("customer_id", req.CustomerID).
			Strs("missing_fields", missing).
			Msg("checkout rejected on shipping validation")
		return &model.ValidationError{Fields: missing}
	}
	return nil
}

// commitGroups attempts one order per seller group in stable group order,
// accumulating successes and failures on the outcome. It returns the cart
// line ids that became orders. Cancellation is honoured between commits,
// never mid-commit; groups not attempted are reported as failures rather than
// silently dropped.
func (s *checkoutService) commitGroups(
	ctx context.Context,
	req *model.CheckoutRequest,
	groups []model.SellerGroup,
	outcome *model.CheckoutOutcome,
) []uuid.UUID {
	var succeeded []uuid.UUID

	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			for _, rest := range groups[i:] {
				outcome.Failures = append(outcome.Failures, model.GroupFailure{
					SellerID: rest.SellerID,
					Code:     model.ErrCodeCancelled,
					Reason:   "checkout cancelled before this seller group was attempted",
				})
			}
			s.logger.Warn().
				Str("customer_id", req.CustomerID).
				Int("remaining_groups", len(groups)-i).
				Msg("checkout cancelled between group commits")
			break
		}

		if !s.roster.Contains(group.SellerID) {
			outcome.Failures = append(outcome.Failures, model.GroupFailure{
				SellerID: group.SellerID,
				Code:     model.ErrCodeSellerNotFound,
				Reason:   model.ErrSellerNotFound.Message,
			})
			continue
		}

		order, err := s.orderRepo.CreateOrder(ctx, repository.CreateOrderParams{
			CustomerID:    req.CustomerID,
			SellerID:      group.SellerID,
			Lines:         group.Lines,
			Shipping:      req.Shipping,
			Notes:         annotateNotes(req.Notes, req.PaymentMethod),
			PaymentMethod: req.PaymentMethod,
			Totals:        s.calc.ComputeGroup(group),
		})
		if err != nil {
			outcome.Failures = append(outcome.Failures, groupFailure(group.SellerID, err))
			s.logger.Warn().
				Err(err).
				Str("customer_id", req.CustomerID).
				Str("seller_id", group.SellerID).
				Msg("seller group commit failed")
			continue
		}

		outcome.CreatedOrders = append(outcome.CreatedOrders, *order)
		for _, line := range group.Lines {
			succeeded = append(succeeded, line.ID)
		}
	}

	return succeeded
}

// routePayments applies the payment-method branch to the created orders.
// Routing problems never undo an order; they surface as warnings.
func (s *checkoutService) routePayments(ctx context.Context, method model.PaymentMethod, outcome *model.CheckoutOutcome) {
	switch method {
	case model.PaymentCard:
		// Card capture is a separate step; hand off the representative
		// order only, unless per-order routing is configured.
		targets := outcome.CreatedOrders[len(outcome.CreatedOrders)-1:]
		if s.cardRouting == CardRoutePerOrder {
			targets = outcome.CreatedOrders
		}
		for i := range targets {
			result, err := s.router.Route(ctx, &targets[i], method)
			if err != nil {
				s.addRoutingWarning(outcome, targets[i].ID, err)
				continue
			}
			outcome.CardHandoffs = append(outcome.CardHandoffs, *result.CardHandoff)
		}

	case model.PaymentQR, model.PaymentCOD:
		for i := range outcome.CreatedOrders {
			order := &outcome.CreatedOrders[i]
			result, err := s.router.Route(ctx, order, method)
			if err != nil {
				s.addRoutingWarning(outcome, order.ID, err)
				continue
			}
			order.Status = result.Status
		}
	}
}

// cleanupCart removes the successfully ordered lines so that a retry after a
// partial failure only re-submits the sellers that failed. Cleanup failure is
// a warning, not a checkout failure: the orders already exist.
func (s *checkoutService) cleanupCart(ctx context.Context, customerID string, lineIDs []uuid.UUID, outcome *model.CheckoutOutcome) {
	if err := s.cartRepo.DeleteLines(ctx, customerID, lineIDs); err != nil {
		s.logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Int("line_count", len(lineIDs)).
			Msg("failed to remove ordered lines from cart")
		outcome.Warnings = append(outcome.Warnings, model.RoutingWarning{
			Reason: "ordered lines could not be removed from the cart; remove them before retrying",
		})
	}
}

func (s *checkoutService) addRoutingWarning(outcome *model.CheckoutOutcome, orderID uuid.UUID, err error) {
	s.logger.Warn().Err(err).Str("order_id", orderID.String()).Msg("payment routing failed")
	outcome.Warnings = append(outcome.Warnings, model.RoutingWarning{
		OrderID: orderID,
		Reason:  err.Error(),
	})
}

// groupFailure converts a per-group commit error into its outcome entry.
func groupFailure(sellerID string, err error) model.GroupFailure {
	var shortfall *model.StockShortfallError
	if errors.As(err, &shortfall) {
		return model.GroupFailure{
			SellerID: sellerID,
			Code:     model.ErrCodeStockShortfall,
			Reason:   shortfall.Error(),
		}
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return model.GroupFailure{
			SellerID: sellerID,
			Code:     domainErr.Code,
			Reason:   domainErr.Message,
		}
	}

	return model.GroupFailure{
		SellerID: sellerID,
		Code:     model.ErrCodePersistence,
		Reason:   err.Error(),
	}
}

// annotateNotes appends the payment-method annotation carried on every order
// created in the attempt.
func annotateNotes(notes string, method model.PaymentMethod) string {
	annotation := fmt.Sprintf("payment=%s", method)
	if notes == "" {
		return annotation
	}
	return notes + " | " + annotation
}
