package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/services"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
)

// CreateOrderCommandHandler creates delivery orders: it prices the request
// through the pricing engine, persists the order with its frozen pricing
// snapshot and an open claim window, and records the coupon redemption.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, engine, validator, 30*time.Minute, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s awaiting payment", created.Number())
type CreateOrderCommandHandler struct {
	uowFactory      OrderUoWFactory
	pricingEngine   services.PricingEngine
	couponValidator ports.CouponValidator
	claimTTL        time.Duration
	logger          *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// claimTTL is how long a new order stays claimable before the expiry sweep
// may cancel it.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricingEngine services.PricingEngine,
	couponValidator ports.CouponValidator,
	claimTTL time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		pricingEngine:   pricingEngine,
		couponValidator: couponValidator,
		claimTTL:        claimTTL,
		logger:          logger,
	}
}

// Handle processes the order creation command and returns the persisted order.
// Pricing happens before the transaction opens: a rejected coupon or a
// mismatched restated subtotal fails the whole request and nothing is stored.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	pricing, coupon, err := h.pricingEngine.ComputePricing(ctx, services.PricingInput{
		BaseFare:          command.BaseFare(),
		DistanceSurcharge: command.DistanceSurcharge(),
		Fees:              command.Fees(),
		Subtotal:          command.Subtotal(),
		CouponCode:        command.CouponCode(),
		Currency:          command.Currency(),
	})
	if err != nil {
		return nil, err
	}

	id := kernel.NewUUID()
	createdAt := time.Now().UTC()

	newOrder, err := order.NewOrder(
		id,
		newOrderNumber(id),
		command.Pickup(),
		command.Dropoff(),
		command.PackageNote(),
		command.DistanceKm(),
		pricing,
		coupon,
		createdAt,
		h.claimTTL,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if coupon != nil {
		// The redemption counter is advisory; its failure must not undo an
		// already committed order.
		go func(code string) {
			redemptionCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if redemptionErr := h.couponValidator.RecordRedemption(redemptionCtx, code); redemptionErr != nil {
				h.logger.Warn("failed to record coupon redemption",
					slog.String("coupon", code),
					slog.String("order", newOrder.Number()),
					slog.Any("error", redemptionErr))
			}
		}(coupon.Code())
	}

	return newOrder, nil
}

// newOrderNumber derives the external order identifier from the storage id.
func newOrderNumber(id kernel.UUID) string {
	compact := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "ORD-" + compact[:12]
}
