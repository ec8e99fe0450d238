package commands

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents the assigned driver advancing an order
// along its delivery path (picked_up, in_transit, delivered) or cancelling it.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	driverID    kernel.UUID
	target      order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to target.
// The assigned status is not a valid target: claiming goes through
// AcceptOrderCommand so the driver binding stays consistent.
func NewUpdateOrderStatusCommand(
	orderNumber string, driverID kernel.UUID, target order.Status,
) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderNumber(orderNumber),
		statusCommand.setDriverID(driverID),
		statusCommand.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderNumber returns the external identifier of the order being updated.
func (c UpdateOrderStatusCommand) OrderNumber() string { return c.orderNumber }

// DriverID returns the identifier of the driver requesting the update.
func (c UpdateOrderStatusCommand) DriverID() kernel.UUID { return c.driverID }

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status { return c.target }

func (c *UpdateOrderStatusCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateOrderStatusCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == order.StatusPending || target == order.StatusAssigned {
		return errs.NewValueIsInvalidError("target status")
	}

	c.target = target
	return nil
}
