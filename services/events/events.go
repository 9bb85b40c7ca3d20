package events

import (
	"context"
	"errors"
	"time"
)

const (
	TypeStatusChanged       = "parcel.status_changed"
	TypeNotificationCreated = "notification.created"
)

// Event is the payload fanned out after a parcel transition commits.
type Event struct {
	EventType      string    `json:"event_type"`
	ParcelID       uint      `json:"parcel_id"`
	TrackingNumber string    `json:"tracking_number"`
	OrganizationID uint      `json:"organization_id"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status,omitempty"`
	UserID         *uint     `json:"user_id,omitempty"`
	NotificationID *uint     `json:"notification_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Message        string    `json:"message,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher delivers events to downstream consumers. Delivery is best effort:
// the database is the source of truth and callers only log failures.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type noop struct{}

// Noop returns a Publisher that drops every event.
func Noop() Publisher { return noop{} }

func (noop) Publish(context.Context, *Event) error { return nil }
func (noop) Close() error                          { return nil }

// Multi fans each event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event *Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
