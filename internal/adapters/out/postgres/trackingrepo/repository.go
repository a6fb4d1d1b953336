package trackingrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Add appends a tracking event to the history.
func (r *GormTrackingRepository) Add(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByDelivery retrieves the full history of a delivery, ascending by
// timestamp. Ties break on the insertion sequence so events written in one
// transaction keep their write order and the last event always reflects the
// delivery's current status.
func (r *GormTrackingRepository) GetByDelivery(ctx context.Context,
	deliveryID kernel.UUID) ([]*tracking.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("timestamp ASC, seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		events = append(events, event)
	}

	return events, nil
}

// GetLast retrieves the most recent event of a delivery.
func (r *GormTrackingRepository) GetLast(ctx context.Context,
	deliveryID kernel.UUID) (*tracking.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("timestamp DESC, seq DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking event", deliveryID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
