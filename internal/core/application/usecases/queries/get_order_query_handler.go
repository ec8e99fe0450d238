package queries

import (
	"context"
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order, including its pricing snapshot,
// coupon and lifecycle timeline.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no order
// carries the requested number.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var row orderRow
	if err := h.db.WithContext(ctx).First(&row, "number = ?", query.Number()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.Number())
		}
		return OrderResponse{}, err
	}

	return toOrderResponse(row), nil
}
