// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the orders table directly through their own read model
// instead of going through repositories and domain aggregates: responses are
// plain data shaped for transport, with no domain behavior attached.
package queries

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// orderRow is the read model over the orders table.
type orderRow struct {
	ID                       uuid.UUID
	Number                   string
	DriverID                 *uuid.UUID
	Status                   int
	PaymentStatus            int
	PickupName               string
	PickupPhone              string
	PickupAddress            string
	DropoffName              string
	DropoffPhone             string
	DropoffAddress           string
	PackageNote              string
	DistanceKm               float64
	ExpiresAt                *time.Time
	PricingBaseFare          int64
	PricingDistanceSurcharge int64
	PricingFees              int64
	PricingSubtotal          int64
	PricingTax               int64
	PricingCouponDiscount    int64
	PricingTotal             int64
	PricingCurrency          string
	CouponCode               *string
	CouponType               *string
	CouponValue              *int64
	CreatedAt                time.Time
	AssignedAt               *time.Time
	PickedUpAt               *time.Time
	DeliveredAt              *time.Time
	CancelledAt              *time.Time
}

func (orderRow) TableName() string {
	return "orders"
}

// ContactResponse is one pickup or dropoff party.
type ContactResponse struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PricingResponse is the order's frozen pricing snapshot in minor units.
type PricingResponse struct {
	BaseFare          int64  `json:"base_fare"`
	DistanceSurcharge int64  `json:"distance_surcharge"`
	Fees              int64  `json:"fees"`
	Subtotal          int64  `json:"subtotal"`
	Tax               int64  `json:"tax"`
	CouponDiscount    int64  `json:"coupon_discount"`
	Total             int64  `json:"total"`
	Currency          string `json:"currency"`
}

// CouponResponse is the coupon snapshot applied at creation.
type CouponResponse struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int64  `json:"discount_value"`
}

// TimelineResponse carries the lifecycle timestamps.
type TimelineResponse struct {
	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// OrderResponse is the transport representation of one order.
type OrderResponse struct {
	Number        string           `json:"number"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	DriverID      *string          `json:"driver_id,omitempty"`
	Pickup        ContactResponse  `json:"pickup"`
	Dropoff       ContactResponse  `json:"dropoff"`
	PackageNote   string           `json:"package_note,omitempty"`
	DistanceKm    float64          `json:"distance_km"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	Pricing       PricingResponse  `json:"pricing"`
	Coupon        *CouponResponse  `json:"coupon,omitempty"`
	Timeline      TimelineResponse `json:"timeline"`
}

func toOrderResponse(row orderRow) OrderResponse {
	var driverID *string
	if row.DriverID != nil {
		s := row.DriverID.String()
		driverID = &s
	}

	var coupon *CouponResponse
	if row.CouponCode != nil && row.CouponType != nil && row.CouponValue != nil {
		coupon = &CouponResponse{
			Code:          *row.CouponCode,
			DiscountType:  *row.CouponType,
			DiscountValue: *row.CouponValue,
		}
	}

	return OrderResponse{
		Number:        row.Number,
		Status:        order.Status(row.Status).String(),
		PaymentStatus: order.PaymentStatus(row.PaymentStatus).String(),
		DriverID:      driverID,
		Pickup:        ContactResponse{Name: row.PickupName, Phone: row.PickupPhone, Address: row.PickupAddress},
		Dropoff:       ContactResponse{Name: row.DropoffName, Phone: row.DropoffPhone, Address: row.DropoffAddress},
		PackageNote:   row.PackageNote,
		DistanceKm:    row.DistanceKm,
		ExpiresAt:     row.ExpiresAt,
		Pricing: PricingResponse{
			BaseFare:          row.PricingBaseFare,
			DistanceSurcharge: row.PricingDistanceSurcharge,
			Fees:              row.PricingFees,
			Subtotal:          row.PricingSubtotal,
			Tax:               row.PricingTax,
			CouponDiscount:    row.PricingCouponDiscount,
			Total:             row.PricingTotal,
			Currency:          row.PricingCurrency,
		},
		Coupon: coupon,
		Timeline: TimelineResponse{
			CreatedAt:   row.CreatedAt,
			AssignedAt:  row.AssignedAt,
			PickedUpAt:  row.PickedUpAt,
			DeliveredAt: row.DeliveredAt,
			CancelledAt: row.CancelledAt,
		},
	}
}
