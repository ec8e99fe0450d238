// Package order provides the delivery-order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root binding status, payment status, driver,
//     expiry window, pricing snapshot and timeline together
//   - Status: the fixed lifecycle state machine
//   - PaymentStatus: the independent payment axis
//   - Pricing and CouponSnapshot: the immutable financial terms of the order
//
// Key business rules:
//   - status moves only along the transition table; delivered and cancelled
//     are terminal
//   - exactly one driver is ever bound to an order
//   - pricing and coupon terms are frozen at creation for auditability
//   - the claim window (expiresAt) exists only while the order is pending
//     and unclaimed
package order
