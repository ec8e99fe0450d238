// Package invoicing renders invoices from an order's frozen pricing snapshot.
// Amounts are copied, never recomputed: the invoice must show exactly what the
// customer was charged at creation time.
package invoicing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// Service implements ports.InvoiceService.
type Service struct{}

// NewService creates the invoice service.
func NewService() Service {
	return Service{}
}

// Generate renders an invoice for a paid order.
func (Service) Generate(_ context.Context, o *order.Order, paymentReference string) (ports.Invoice, error) {
	if err := o.Validate(); err != nil {
		return ports.Invoice{}, err
	}
	if paymentReference == "" {
		return ports.Invoice{}, errs.NewValueIsRequiredError("payment reference")
	}

	pricing := o.Pricing()
	return ports.Invoice{
		Number:           invoiceNumber(o.Number()),
		OrderNumber:      o.Number(),
		PaymentReference: paymentReference,
		Subtotal:         pricing.Subtotal(),
		Tax:              pricing.Tax(),
		Total:            pricing.Total(),
		Currency:         pricing.Currency(),
		IssuedAt:         time.Now().UTC(),
	}, nil
}

// invoiceNumber derives the invoice number from the order number so replays of
// the generation step cannot mint a second identity for the same order.
func invoiceNumber(orderNumber string) string {
	return "INV-" + strings.TrimPrefix(orderNumber, "ORD-")
}

// LogEmailSender implements ports.EmailSender by logging the invoice instead
// of delivering mail. It stands in until an outbound mail provider is wired.
type LogEmailSender struct {
	logger *slog.Logger
}

// NewLogEmailSender creates the logging email sender.
func NewLogEmailSender(logger *slog.Logger) LogEmailSender {
	return LogEmailSender{logger: logger}
}

// SendInvoice logs the invoice at info level.
func (s LogEmailSender) SendInvoice(_ context.Context, invoice ports.Invoice) error {
	s.logger.Info("invoice issued",
		slog.String("invoice", invoice.Number),
		slog.String("order", invoice.OrderNumber),
		slog.String("payment_reference", invoice.PaymentReference),
		slog.String("amount", fmt.Sprintf("%d %s", invoice.Total, invoice.Currency)),
	)
	return nil
}
