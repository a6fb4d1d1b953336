package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate using
	// optimistic concurrency. Returns errs.VersionConflictError when the
	// stored row was modified since the aggregate was loaded.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when the delivery does not exist.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}
