package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// GetTrackingQueryHandler retrieves the tracking view of a delivery: current
// status, progress, last known location and the full event history in
// timestamp order.
type GetTrackingQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetTrackingQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db, policy: policy}
}

// Handle executes the tracking query. The actor must be the delivery's
// client, the assigned courier or an admin.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	aggregate, err := loadDelivery(ctx, h.db, query.DeliveryID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	if err = h.policy.AuthorizeTrackingView(query.Actor(), aggregate); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	events, err := h.loadEvents(ctx, query.DeliveryID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response := GetTrackingQueryResponse{
		DeliveryID: aggregate.ID(),
		Status:     aggregate.Status().String(),
		Progress:   aggregate.Status().Progress(),
		Events:     events,
	}

	// The last event with a recorded position is the current location.
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Location != nil {
			response.CurrentLocation = events[i].Location
			break
		}
	}

	return response, nil
}

func (h GetTrackingQueryHandler) loadEvents(ctx context.Context,
	deliveryID kernel.UUID) ([]TrackingEventResponse, error) {
	events := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			latitude,
			longitude,
			message,
			timestamp
		FROM tracking_events
		WHERE delivery_id = ?
		ORDER BY timestamp ASC, seq ASC
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID     uuid.UUID
			status    int
			latitude  *float64
			longitude *float64
			message   string
			timestamp time.Time
		)
		if err = rows.Scan(&rawID, &status, &latitude, &longitude, &message,
			&timestamp); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}

		event := TrackingEventResponse{
			ID:        id,
			Status:    delivery.Status(status).String(),
			Message:   message,
			Timestamp: timestamp,
		}

		if latitude != nil && longitude != nil {
			location, locErr := kernel.NewLocation(*latitude, *longitude)
			if locErr != nil {
				return nil, locErr
			}
			event.Location = &location
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
