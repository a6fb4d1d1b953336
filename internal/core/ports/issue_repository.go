package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// IssueRepository defines the persistence contract for delivery issues.
type IssueRepository interface {
	// Add persists a newly reported issue.
	Add(ctx context.Context, aggregate *issue.Issue) error

	// GetByDelivery retrieves all issues reported against a delivery,
	// ascending by creation time.
	GetByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*issue.Issue, error)
}
