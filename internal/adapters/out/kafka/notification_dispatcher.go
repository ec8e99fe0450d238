// Package kafka publishes driver notifications to a Kafka topic. A consumer
// (push service, SMS gateway) delivers them; this service only guarantees the
// publish.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// notificationEnvelope is the wire format of one driver notification.
type notificationEnvelope struct {
	Kind        string    `json:"kind"`
	DriverID    string    `json:"driver_id"`
	OrderNumber string    `json:"order_number"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sent_at"`
}

// NotificationDispatcher implements ports.NotificationDispatcher on top of a
// Kafka writer. Messages are keyed by driver id so one driver's notifications
// stay ordered within a partition.
type NotificationDispatcher struct {
	writer *kafka.Writer
}

// NewNotificationDispatcher creates a dispatcher publishing through writer.
func NewNotificationDispatcher(writer *kafka.Writer) *NotificationDispatcher {
	return &NotificationDispatcher{writer: writer}
}

// NewWriter builds the Kafka writer for the notifications topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Send publishes one notification for the driver.
func (d *NotificationDispatcher) Send(ctx context.Context, driverID kernel.UUID, payload ports.NotificationPayload) error {
	envelope := notificationEnvelope{
		Kind:        payload.Kind,
		DriverID:    driverID.String(),
		OrderNumber: payload.OrderNumber,
		Message:     payload.Message,
		SentAt:      time.Now().UTC(),
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(driverID.String()),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (d *NotificationDispatcher) Close() error {
	return d.writer.Close()
}
