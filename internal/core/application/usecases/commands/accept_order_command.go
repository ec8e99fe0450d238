package commands

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrAcceptOrderCommandIsNotConstructed = errors.New(
		"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// AcceptOrderCommand represents a driver's attempt to claim a pending order.
// Under concurrent attempts for the same order exactly one driver wins; the
// rest receive a conflict.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	driverID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a driver to claim an order.
func NewAcceptOrderCommand(orderNumber string, driverID kernel.UUID) (AcceptOrderCommand, error) {
	acceptCommand := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderNumber(orderNumber),
		acceptCommand.setDriverID(driverID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOrderCommandIsNotConstructed if validation fails.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderNumber returns the external identifier of the order being claimed.
func (c AcceptOrderCommand) OrderNumber() string { return c.orderNumber }

// DriverID returns the identifier of the claiming driver.
func (c AcceptOrderCommand) DriverID() kernel.UUID { return c.driverID }

func (c *AcceptOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *AcceptOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
