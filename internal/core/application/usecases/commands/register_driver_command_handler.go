package commands

import (
	"context"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/driver"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
)

// RegisterDriverCommandHandler registers new drivers. Registered drivers are
// active immediately and start receiving new-order notifications.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration and returns the persisted driver.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, command RegisterDriverCommand) (*driver.Driver, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newDriver, err := driver.NewDriver(kernel.NewUUID(), command.Name(), command.Phone())
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

	if err = uow.DriverRepository().Add(ctx, newDriver); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newDriver, nil
}
