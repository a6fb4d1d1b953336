// Package tracking contains the immutable tracking event log entries appended
// alongside every delivery status mutation.
package tracking

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent or RestoreEvent factory methods.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is an immutable, timestamped record of a delivery status or location
// change. Events belong to exactly one delivery and are appended in the same
// atomic unit as the status mutation that produced them.
//
// Invariant: events for a delivery are monotonically non-decreasing in
// timestamp, and the most recent event's status equals the delivery's current
// status. The repository enforces ordering on read; handlers enforce the
// status invariant by appending inside the mutation's transaction.
type Event struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	status     delivery.Status
	location   *kernel.Location
	message    string
	timestamp  time.Time

	isConstructed bool
}

// NewEvent creates a tracking event for a delivery.
// Location is optional; message is required so history stays human-readable.
func NewEvent(
	deliveryID kernel.UUID,
	status delivery.Status,
	location *kernel.Location,
	message string,
	timestamp time.Time,
) (*Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if timestamp.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	return &Event{
		id:            kernel.NewUUID(),
		deliveryID:    deliveryID,
		status:        status,
		location:      location,
		message:       message,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence.
func RestoreEvent(
	id kernel.UUID,
	deliveryID kernel.UUID,
	status delivery.Status,
	location *kernel.Location,
	message string,
	timestamp time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		deliveryID:    deliveryID,
		status:        status,
		location:      location,
		message:       message,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the identifier of the delivery the event belongs to.
func (e *Event) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// Status returns the delivery status snapshot at event time.
func (e *Event) Status() delivery.Status {
	return e.status
}

// Location returns the recorded position, or nil if none was supplied.
func (e *Event) Location() *kernel.Location {
	return e.location
}

// Message returns the human-readable event description.
func (e *Event) Message() string {
	return e.message
}

// Timestamp returns when the event occurred.
func (e *Event) Timestamp() time.Time {
	return e.timestamp
}
