// Package queries contains read-only operations over the persisted lifecycle
// state. Query handlers go straight to the database with raw SQL and never
// mutate anything, the read side of the CQRS split.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the tracking history of one delivery for an
// actor entitled to see it.
type GetTrackingQuery struct {
	deliveryID kernel.UUID
	actor      auth.Actor

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for a delivery's tracking history.
func NewGetTrackingQuery(deliveryID kernel.UUID, actor auth.Actor) (GetTrackingQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}
	if err := actor.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		deliveryID: deliveryID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being tracked.
func (q GetTrackingQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Actor returns the party requesting the history.
func (q GetTrackingQuery) Actor() auth.Actor {
	return q.actor
}

// TrackingEventResponse represents one entry of the tracking history.
type TrackingEventResponse struct {
	ID        kernel.UUID
	Status    string
	Location  *kernel.Location
	Message   string
	Timestamp time.Time
}

// GetTrackingQueryResponse represents the tracking view of a delivery: its
// current status, a coarse progress percentage, the last known location and
// the full event history ascending by timestamp.
type GetTrackingQueryResponse struct {
	DeliveryID      kernel.UUID
	Status          string
	Progress        int
	CurrentLocation *kernel.Location
	Events          []TrackingEventResponse
}
