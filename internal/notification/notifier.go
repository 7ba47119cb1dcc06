package notification

import (
	"context"
	"time"
)

// AppointmentEvent is the payload sent to the notification dispatcher
// when an appointment changes state.
type AppointmentEvent struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	CustomerID string    `json:"customer_id"`
	Date       time.Time `json:"date"`
}

// Notifier delivers appointment events to the external notification
// dispatcher. Delivery is best-effort: callers log failures and move on,
// a booking never fails because its notification did.
type Notifier interface {
	AppointmentCreated(ctx context.Context, evt AppointmentEvent) error
	AppointmentCanceled(ctx context.Context, evt AppointmentEvent) error
}

// NopNotifier discards all events. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) AppointmentCreated(ctx context.Context, evt AppointmentEvent) error {
	return nil
}

func (NopNotifier) AppointmentCanceled(ctx context.Context, evt AppointmentEvent) error {
	return nil
}
