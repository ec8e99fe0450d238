// Package paymentrepo persists the mirror of processor-side payment intents,
// keyed by order number so replayed confirmations overwrite in place.
package paymentrepo

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
)

// PaymentDTO represents the database structure for the payment mirror.
type PaymentDTO struct {
	OrderNumber     string `gorm:"primaryKey"`
	StripeReference string `gorm:"not null;index"`
	Amount          int64
	Currency        string
	Status          string
	UpdatedAt       time.Time
}

// TableName specifies the database table name for payment mirror rows.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment mirror to its database representation.
func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		OrderNumber:     p.OrderNumber(),
		StripeReference: p.StripeReference(),
		Amount:          p.Amount(),
		Currency:        p.Currency(),
		Status:          string(p.Status()),
	}
}

// toDomain converts a database DTO to a payment mirror.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	return payment.NewPayment(
		dto.OrderNumber,
		dto.StripeReference,
		dto.Amount,
		dto.Currency,
		payment.Status(dto.Status),
	)
}
