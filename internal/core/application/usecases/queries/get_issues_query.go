package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetIssuesQueryIsNotConstructed = errors.New(
	"GetIssuesQuery must be created via NewGetIssuesQuery constructor",
)

// GetIssuesQuery retrieves the issues reported against one delivery for an
// actor entitled to see them.
type GetIssuesQuery struct {
	deliveryID kernel.UUID
	actor      auth.Actor

	guard guard.ConstructorGuard
}

// NewGetIssuesQuery creates a query for a delivery's issue list.
func NewGetIssuesQuery(deliveryID kernel.UUID, actor auth.Actor) (GetIssuesQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetIssuesQuery{}, err
	}
	if err := actor.Validate(); err != nil {
		return GetIssuesQuery{}, err
	}

	return GetIssuesQuery{
		deliveryID: deliveryID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetIssuesQuery) Validate() error {
	return q.guard.Validate(ErrGetIssuesQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery whose issues are listed.
func (q GetIssuesQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Actor returns the party requesting the list.
func (q GetIssuesQuery) Actor() auth.Actor {
	return q.actor
}

// GetIssuesQueryResponse represents one reported issue.
type GetIssuesQueryResponse struct {
	ID          kernel.UUID
	DeliveryID  kernel.UUID
	ReporterID  kernel.UUID
	Type        string
	Severity    string
	Status      string
	Description string
	Location    *kernel.Location
	Photos      []string
	CreatedAt   time.Time
}
