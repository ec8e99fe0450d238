package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler advances an order along the delivery path on
// behalf of its assigned driver. Ownership is checked against a snapshot;
// the transition itself is a conditional update keyed on the snapshot's
// status, so a concurrent mutation surfaces as an invalid-transition refusal
// rather than a lost update.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update and returns the updated order.
// Returns errs.ErrOperationForbidden when the requester is not the assigned
// driver, errs.ErrObjectNotFound for an unknown order, and
// errs.ErrInvalidTransition when the move is not allowed from the current
// status (including a terminal one).
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) (*order.Order, error) {
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

	ordersRepo := uow.OrderRepository()

	current, err := ordersRepo.GetByNumber(ctx, command.OrderNumber())
	if err != nil {
		return nil, err
	}

	boundDriver := current.Driver()
	if boundDriver == nil || !boundDriver.IsEqual(command.DriverID()) {
		return nil, errs.NewOperationForbiddenErrorWithCause(
			"update order status",
			fmt.Errorf("order %s is not assigned to driver %s", command.OrderNumber(), command.DriverID()),
		)
	}

	updated, err := ordersRepo.TransitionStatus(
		ctx, command.OrderNumber(), current.Status(), command.Target(), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
