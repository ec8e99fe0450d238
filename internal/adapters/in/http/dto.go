package http

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/driver"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
)

// ContactRequest is one pickup or dropoff party in a create request.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. All amounts are in
// minor units. Subtotal is optional; when present it must equal the sum of
// the fare components.
type CreateOrderRequest struct {
	Pickup            ContactRequest `json:"pickup"`
	Dropoff           ContactRequest `json:"dropoff"`
	PackageNote       string         `json:"package_note"`
	DistanceKm        float64        `json:"distance_km"`
	BaseFare          int64          `json:"base_fare"`
	DistanceSurcharge int64          `json:"distance_surcharge"`
	Fees              int64          `json:"fees"`
	Subtotal          *int64         `json:"subtotal,omitempty"`
	CouponCode        string         `json:"coupon_code"`
	Currency          string         `json:"currency"`
}

// AcceptOrderRequest is the body of POST /api/v1/orders/:number/accept.
type AcceptOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// UpdateOrderStatusRequest is the body of POST /api/v1/orders/:number/status.
type UpdateOrderStatusRequest struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// RegisterDriverRequest is the body of POST /api/v1/drivers.
type RegisterDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DriverResponse is the transport representation of a driver.
type DriverResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

// OrderResponse is the transport representation of an order aggregate as
// returned by the command endpoints. The query endpoints return the read
// model's own shape, which carries the same fields.
type OrderResponse struct {
	Number        string           `json:"number"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	DriverID      *string          `json:"driver_id,omitempty"`
	Pickup        ContactRequest   `json:"pickup"`
	Dropoff       ContactRequest   `json:"dropoff"`
	PackageNote   string           `json:"package_note,omitempty"`
	DistanceKm    float64          `json:"distance_km"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	Pricing       PricingResponse  `json:"pricing"`
	Coupon        *CouponResponse  `json:"coupon,omitempty"`
	Timeline      TimelineResponse `json:"timeline"`
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

// SweepResponse reports the outcome of a manual expiry sweep.
type SweepResponse struct {
	CancelledCount int `json:"cancelled_count"`
}

// WebhookAck acknowledges an accepted webhook delivery.
type WebhookAck struct {
	Received bool `json:"received"`
}

func toOrderResponse(anOrder *order.Order) OrderResponse {
	var driverID *string
	if anOrder.Driver() != nil {
		s := anOrder.Driver().String()
		driverID = &s
	}

	var coupon *CouponResponse
	if anOrder.Coupon() != nil {
		coupon = &CouponResponse{
			Code:          anOrder.Coupon().Code(),
			DiscountType:  string(anOrder.Coupon().DiscountType()),
			DiscountValue: anOrder.Coupon().DiscountValue(),
		}
	}

	pricing := anOrder.Pricing()
	timeline := anOrder.Timeline()

	return OrderResponse{
		Number:        anOrder.Number(),
		Status:        anOrder.Status().String(),
		PaymentStatus: anOrder.PaymentStatus().String(),
		DriverID:      driverID,
		Pickup:        toContactRequest(anOrder.Pickup()),
		Dropoff:       toContactRequest(anOrder.Dropoff()),
		PackageNote:   anOrder.PackageNote(),
		DistanceKm:    anOrder.DistanceKm(),
		ExpiresAt:     anOrder.ExpiresAt(),
		Pricing: PricingResponse{
			BaseFare:          pricing.BaseFare(),
			DistanceSurcharge: pricing.DistanceSurcharge(),
			Fees:              pricing.Fees(),
			Subtotal:          pricing.Subtotal(),
			Tax:               pricing.Tax(),
			CouponDiscount:    pricing.CouponDiscount(),
			Total:             pricing.Total(),
			Currency:          pricing.Currency(),
		},
		Coupon: coupon,
		Timeline: TimelineResponse{
			CreatedAt:   timeline.CreatedAt,
			AssignedAt:  timeline.AssignedAt,
			PickedUpAt:  timeline.PickedUpAt,
			DeliveredAt: timeline.DeliveredAt,
			CancelledAt: timeline.CancelledAt,
		},
	}
}

func toContactRequest(contact order.Contact) ContactRequest {
	return ContactRequest{Name: contact.Name, Phone: contact.Phone, Address: contact.Address}
}

func toDriverResponse(aDriver *driver.Driver) DriverResponse {
	return DriverResponse{
		ID:     aDriver.ID().String(),
		Name:   aDriver.Name(),
		Phone:  aDriver.Phone(),
		Active: aDriver.IsActive(),
	}
}
