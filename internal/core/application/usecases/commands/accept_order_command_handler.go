package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// AcceptOrderCommandHandler resolves the first-driver-wins race. Driver
// eligibility is checked up front, but the claim itself is a single atomic
// conditional update: the database predicate, not the eligibility read,
// decides the winner.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, dispatcher, logger)
//	accepted, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectConflict):
//	    log.Println("another driver claimed the order first")
//	case err != nil:
//	    log.Printf("claim failed: %v", err)
//	default:
//	    log.Printf("order %s assigned", accepted.Number())
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for driver claim attempts.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes the claim attempt and returns the assigned order on success.
// An unknown or deactivated driver is refused with errs.ErrOperationForbidden
// before the order row is touched; losing the race yields the conditional
// update's typed refusal unchanged.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	claimingDriver, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return nil, errs.NewOperationForbiddenErrorWithCause("accept order", err)
	}
	if !claimingDriver.IsActive() {
		return nil, errs.NewOperationForbiddenErrorWithCause(
			"accept order",
			fmt.Errorf("driver %s is deactivated", claimingDriver.ID()),
		)
	}

	accepted, err := uow.OrderRepository().AcceptByDriver(
		ctx, command.OrderNumber(), command.DriverID(), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyAssignment(ctx, accepted)

	return accepted, nil
}

// notifyAssignment tells the winning driver asynchronously. The assignment is
// already committed; a notification failure is logged and otherwise ignored.
func (h AcceptOrderCommandHandler) notifyAssignment(ctx context.Context, accepted *order.Order) {
	driverID := *accepted.Driver()
	payload := ports.NotificationPayload{
		Kind:        ports.NotificationKindOrderAssigned,
		OrderNumber: accepted.Number(),
		Message: fmt.Sprintf("pickup at %s, dropoff at %s",
			accepted.Pickup().Address, accepted.Dropoff().Address),
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := h.dispatcher.Send(sendCtx, driverID, payload); err != nil {
			h.logger.Warn("failed to notify driver of assignment",
				slog.String("order", payload.OrderNumber),
				slog.String("driver", driverID.String()),
				slog.Any("error", err))
		}
	}()
}
