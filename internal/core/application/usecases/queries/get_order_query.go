package queries

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// GetOrderQuery retrieves one order by its external identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-1A2B3C4D5E6F")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given number.
func NewGetOrderQuery(number string) (GetOrderQuery, error) {
	if number == "" {
		return GetOrderQuery{}, ErrOrderNumberIsRequired
	}

	return GetOrderQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Number returns the external order identifier being looked up.
func (q GetOrderQuery) Number() string { return q.number }
