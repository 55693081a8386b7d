package service

import (
	"context"
	"fmt"

	"agora/internal/model"
	"agora/internal/repository"

	"github.com/rs/zerolog"
)

// paymentRouter implements PaymentRouter over the order repository's
// conditional status transition.
type paymentRouter struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewPaymentRouter creates a new payment router.
func NewPaymentRouter(orderRepo repository.OrderRepository, logger zerolog.Logger) PaymentRouter {
	return &paymentRouter{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "payment-router").Logger(),
	}
}

// Route applies the payment-method branch to one order.
//
// CARD returns a hand-off descriptor for the separate card-capture step; it
// does not move money and leaves the order PENDING. QR marks the order as
// awaiting manual payment verification. COD confirms the order with payment
// deferred to delivery. An order that is no longer PENDING is refused.
func (p *paymentRouter) Route(ctx context.Context, order *model.Order, method model.PaymentMethod) (*model.RoutingResult, error) {
	if order == nil {
		return nil, fmt.Errorf("order is nil")
	}

	if order.Status != model.StatusPending {
		p.logger.Warn().
			Str("order_code", order.Code).
			Str("status", string(order.Status)).
			Msg("refusing to route non-pending order")
		return nil, &model.RoutingError{OrderCode: order.Code, Status: order.Status}
	}

	var target model.OrderStatus
	switch method {
	case model.PaymentCard:
		// Capture happens out of band; the order stays PENDING until
		// the capture step confirms payment.
		p.logger.Info().
			Str("order_code", order.Code).
			Int64("grand_total", order.GrandTotal).
			Msg("card capture hand-off prepared")
		return &model.RoutingResult{
			OrderID:   order.ID,
			OrderCode: order.Code,
			Status:    order.Status,
			CardHandoff: &model.CardHandoff{
				OrderID:    order.ID,
				OrderCode:  order.Code,
				GrandTotal: order.GrandTotal,
			},
		}, nil

	case model.PaymentQR:
		target = model.StatusAwaitingVerification
	case model.PaymentCOD:
		target = model.StatusConfirmedPendingDelivery
	default:
		return nil, model.ErrInvalidPaymentMethod
	}

	ok, err := p.orderRepo.UpdateStatusIfPending(ctx, order.ID, target)
	if err != nil {
		p.logger.Error().Err(err).Str("order_code", order.Code).Msg("failed to route order")
		return nil, fmt.Errorf("failed to route order %s: %w", order.Code, err)
	}
	if !ok {
		// Lost a race with another transition since the order was read.
		return nil, &model.RoutingError{OrderCode: order.Code, Status: order.Status}
	}

	p.logger.Info().
		Str("order_code", order.Code).
		Str("status", string(target)).
		Msg("order routed")

	return &model.RoutingResult{
		OrderID:   order.ID,
		OrderCode: order.Code,
		Status:    target,
	}, nil
}
