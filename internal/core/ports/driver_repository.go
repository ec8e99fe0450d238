package ports

import (
	"context"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/driver"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
)

// DriverRepository is the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by id.
	// Returns errs.ErrObjectNotFound when no such driver exists.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllActive retrieves every driver currently holding the driver
	// capability. Used as the recipient set for new-order fan-out.
	GetAllActive(ctx context.Context) ([]*driver.Driver, error)
}
