package queries

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// maxListLimit caps one page of list results.
const maxListLimit = 200

// ListOrdersFilters carries the optional, typed filters of an order listing.
// Zero values mean "no constraint"; free-form filter maps are not accepted.
type ListOrdersFilters struct {
	// Statuses restricts to orders in any of the named statuses.
	Statuses []string

	// HasDriver restricts to claimed (true) or unclaimed (false) orders.
	HasDriver *bool

	// DriverID restricts to orders bound to this driver.
	DriverID string

	// PaymentStatus restricts to one payment axis value.
	PaymentStatus string

	// CreatedFrom/CreatedTo bound creation time (inclusive from, exclusive to).
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Limit caps the result size; 0 selects the maximum page size.
	Limit int
}

// ListOrdersQuery retrieves orders matching typed filters, newest first.
// Unknown status or payment status names are rejected at construction rather
// than silently matching nothing.
type ListOrdersQuery struct {
	statuses      []order.Status
	hasDriver     *bool
	driverID      string
	paymentStatus *order.PaymentStatus
	createdFrom   *time.Time
	createdTo     *time.Time
	limit         int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a validated listing query from the filters.
func NewListOrdersQuery(filters ListOrdersFilters) (ListOrdersQuery, error) {
	listQuery := ListOrdersQuery{
		hasDriver:   filters.HasDriver,
		driverID:    filters.DriverID,
		createdFrom: filters.CreatedFrom,
		createdTo:   filters.CreatedTo,
		limit:       filters.Limit,
		guard:       guard.NewConstructorGuard(),
	}

	for _, name := range filters.Statuses {
		status, err := order.StatusFromString(name)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		listQuery.statuses = append(listQuery.statuses, status)
	}

	if filters.PaymentStatus != "" {
		paymentStatus, err := order.PaymentStatusFromString(filters.PaymentStatus)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		listQuery.paymentStatus = &paymentStatus
	}

	if listQuery.limit < 0 {
		return ListOrdersQuery{}, fmt.Errorf("limit %d must not be negative", listQuery.limit)
	}
	if listQuery.limit == 0 || listQuery.limit > maxListLimit {
		listQuery.limit = maxListLimit
	}

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Statuses returns the status filter, or nil for no constraint.
func (q ListOrdersQuery) Statuses() []order.Status { return q.statuses }

// HasDriver returns the claimed/unclaimed filter, or nil for no constraint.
func (q ListOrdersQuery) HasDriver() *bool { return q.hasDriver }

// DriverID returns the driver filter, or empty for no constraint.
func (q ListOrdersQuery) DriverID() string { return q.driverID }

// PaymentStatus returns the payment axis filter, or nil for no constraint.
func (q ListOrdersQuery) PaymentStatus() *order.PaymentStatus { return q.paymentStatus }

// CreatedFrom returns the inclusive lower creation-time bound, or nil.
func (q ListOrdersQuery) CreatedFrom() *time.Time { return q.createdFrom }

// CreatedTo returns the exclusive upper creation-time bound, or nil.
func (q ListOrdersQuery) CreatedTo() *time.Time { return q.createdTo }

// Limit returns the effective page size.
func (q ListOrdersQuery) Limit() int { return q.limit }
