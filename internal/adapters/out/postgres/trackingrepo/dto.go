// Package trackingrepo provides data transfer objects and mapping functions
// for the append-only tracking history of deliveries.
package trackingrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// EventDTO represents the database structure for persisting tracking events.
// Rows are insert-only; the composite index serves the per-delivery history
// scan in timestamp order. Seq is assigned by the database on insert and
// breaks timestamp ties in insertion order, so events written together in
// one transaction keep a stable, meaningful order.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index:idx_tracking_delivery_ts"`
	Status     int
	Latitude   *float64
	Longitude  *float64
	Message    string
	Timestamp  time.Time `gorm:"index:idx_tracking_delivery_ts"`
}

// TableName specifies the database table name for tracking events.
func (EventDTO) TableName() string {
	return "tracking_events"
}

// fromDomain converts a tracking event to its database representation.
func fromDomain(event *tracking.Event) EventDTO {
	var latitude, longitude *float64
	if location := event.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return EventDTO{
		ID:         event.ID().Bytes(),
		DeliveryID: event.DeliveryID().Bytes(),
		Status:     int(event.Status()),
		Latitude:   latitude,
		Longitude:  longitude,
		Message:    event.Message(),
		Timestamp:  event.Timestamp(),
	}
}

// toDomain converts a database DTO to a tracking event.
func toDomain(dto EventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return tracking.RestoreEvent(id, deliveryID, delivery.Status(dto.Status),
		location, dto.Message, dto.Timestamp)
}
