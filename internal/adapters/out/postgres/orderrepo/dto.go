// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The number column carries a unique index because it is the external identity
// used by every conditional update; status, driver and expiry are indexed for
// the claim and sweep predicates.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number        string     `gorm:"uniqueIndex;not null"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	Status        int        `gorm:"index"`
	PaymentStatus int        `gorm:"index"`
	Pickup        ContactDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff       ContactDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageNote   string
	DistanceKm    float64
	ExpiresAt     *time.Time `gorm:"index"`
	Pricing       PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`
	CouponCode    *string
	CouponType    *string
	CouponValue   *int64
	CreatedAt     time.Time `gorm:"index"`
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ContactDTO represents an embedded pickup or dropoff party within the order table.
type ContactDTO struct {
	Name    string
	Phone   string
	Address string
}

// PricingDTO represents the embedded immutable pricing snapshot. All amounts
// are integer minor units.
type PricingDTO struct {
	BaseFare          int64
	DistanceSurcharge int64
	Fees              int64
	Subtotal          int64
	Tax               int64
	CouponDiscount    int64
	Total             int64
	Currency          string
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var couponCode *string
	var couponType *string
	var couponValue *int64
	if c := aggregate.Coupon(); c != nil {
		code := c.Code()
		kind := string(c.DiscountType())
		value := c.DiscountValue()
		couponCode = &code
		couponType = &kind
		couponValue = &value
	}

	pricing := aggregate.Pricing()
	timeline := aggregate.Timeline()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Number:        aggregate.Number(),
		DriverID:      driverID,
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Pickup:        contactFromDomain(aggregate.Pickup()),
		Dropoff:       contactFromDomain(aggregate.Dropoff()),
		PackageNote:   aggregate.PackageNote(),
		DistanceKm:    aggregate.DistanceKm(),
		ExpiresAt:     aggregate.ExpiresAt(),
		Pricing: PricingDTO{
			BaseFare:          pricing.BaseFare(),
			DistanceSurcharge: pricing.DistanceSurcharge(),
			Fees:              pricing.Fees(),
			Subtotal:          pricing.Subtotal(),
			Tax:               pricing.Tax(),
			CouponDiscount:    pricing.CouponDiscount(),
			Total:             pricing.Total(),
			Currency:          pricing.Currency(),
		},
		CouponCode:  couponCode,
		CouponType:  couponType,
		CouponValue: couponValue,
		CreatedAt:   timeline.CreatedAt,
		AssignedAt:  timeline.AssignedAt,
		PickedUpAt:  timeline.PickedUpAt,
		DeliveredAt: timeline.DeliveredAt,
		CancelledAt: timeline.CancelledAt,
	}
}

func contactFromDomain(c order.Contact) ContactDTO {
	return ContactDTO{Name: c.Name, Phone: c.Phone, Address: c.Address}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pricing, err := order.NewPricing(
		dto.Pricing.BaseFare,
		dto.Pricing.DistanceSurcharge,
		dto.Pricing.Fees,
		dto.Pricing.Subtotal,
		dto.Pricing.Tax,
		dto.Pricing.CouponDiscount,
		dto.Pricing.Total,
		dto.Pricing.Currency,
	)
	if err != nil {
		return nil, err
	}

	var coupon *order.CouponSnapshot
	if dto.CouponCode != nil && dto.CouponType != nil && dto.CouponValue != nil {
		snapshot, couponErr := order.NewCouponSnapshot(
			*dto.CouponCode, order.DiscountType(*dto.CouponType), *dto.CouponValue,
		)
		if couponErr != nil {
			return nil, couponErr
		}
		coupon = &snapshot
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Contact{Name: dto.Pickup.Name, Phone: dto.Pickup.Phone, Address: dto.Pickup.Address},
		order.Contact{Name: dto.Dropoff.Name, Phone: dto.Dropoff.Phone, Address: dto.Dropoff.Address},
		dto.PackageNote,
		dto.DistanceKm,
		driverID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.ExpiresAt,
		pricing,
		coupon,
		order.Timeline{
			CreatedAt:   dto.CreatedAt,
			AssignedAt:  dto.AssignedAt,
			PickedUpAt:  dto.PickedUpAt,
			DeliveredAt: dto.DeliveredAt,
			CancelledAt: dto.CancelledAt,
		},
	)
}
