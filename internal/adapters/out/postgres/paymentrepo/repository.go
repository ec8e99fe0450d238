package paymentrepo

import (
	"context"
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Upsert writes the processor's latest view of the order's charge. Later
// events for the same order overwrite the row; the webhook ledger, not this
// table, is what deduplicates deliveries.
func (r *GormPaymentRepository) Upsert(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"stripe_reference", "amount", "currency", "status", "updated_at"}),
		}).
		Create(&dto).Error
}

// GetByOrderNumber retrieves the mirror row for an order.
func (r *GormPaymentRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*payment.Payment, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}
