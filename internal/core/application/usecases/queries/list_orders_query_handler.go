package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders for dispatch boards and driver apps.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(ListOrdersFilters{Statuses: []string{"pending"}})
//	open, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing, newest orders first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Model(&orderRow{})

	if statuses := query.Statuses(); len(statuses) > 0 {
		values := make([]int, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, int(s))
		}
		db = db.Where("status IN ?", values)
	}
	if hasDriver := query.HasDriver(); hasDriver != nil {
		if *hasDriver {
			db = db.Where("driver_id IS NOT NULL")
		} else {
			db = db.Where("driver_id IS NULL")
		}
	}
	if driverID := query.DriverID(); driverID != "" {
		db = db.Where("driver_id = ?", driverID)
	}
	if paymentStatus := query.PaymentStatus(); paymentStatus != nil {
		db = db.Where("payment_status = ?", int(*paymentStatus))
	}
	if from := query.CreatedFrom(); from != nil {
		db = db.Where("created_at >= ?", *from)
	}
	if to := query.CreatedTo(); to != nil {
		db = db.Where("created_at < ?", *to)
	}

	var rows []orderRow
	if err := db.Order("created_at DESC").Limit(query.Limit()).Find(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toOrderResponse(row))
	}

	return responses, nil
}
