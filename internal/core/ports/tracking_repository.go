package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for the append-only
// tracking history of deliveries.
type TrackingRepository interface {
	// Add appends a tracking event. Events are never updated or removed.
	Add(ctx context.Context, event *tracking.Event) error

	// GetByDelivery retrieves the full tracking history of a delivery,
	// ascending by timestamp.
	GetByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.Event, error)

	// GetLast retrieves the most recent tracking event of a delivery.
	// Returns errs.ObjectNotFoundError when the delivery has no events yet.
	GetLast(ctx context.Context, deliveryID kernel.UUID) (*tracking.Event, error)
}
