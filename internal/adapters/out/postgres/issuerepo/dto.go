// Package issuerepo provides data transfer objects and mapping functions for
// delivery issue persistence.
package issuerepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// IssueDTO represents the database structure for persisting delivery issues.
type IssueDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;index"`
	ReporterID  uuid.UUID `gorm:"type:uuid"`
	Type        int
	Severity    int
	Status      int
	Description string
	Latitude    *float64
	Longitude   *float64
	Photos      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for issue entities.
func (IssueDTO) TableName() string {
	return "delivery_issues"
}

// fromDomain converts an issue domain aggregate to its database
// representation.
func fromDomain(aggregate *issue.Issue) (IssueDTO, error) {
	var latitude, longitude *float64
	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		latitude = &lat
		longitude = &lon
	}

	var photos datatypes.JSON
	if refs := aggregate.Photos(); len(refs) > 0 {
		raw, err := json.Marshal(refs)
		if err != nil {
			return IssueDTO{}, err
		}
		photos = raw
	}

	return IssueDTO{
		ID:          aggregate.ID().Bytes(),
		DeliveryID:  aggregate.DeliveryID().Bytes(),
		ReporterID:  aggregate.ReporterID().Bytes(),
		Type:        int(aggregate.Type()),
		Severity:    int(aggregate.Severity()),
		Status:      int(aggregate.Status()),
		Description: aggregate.Description(),
		Latitude:    latitude,
		Longitude:   longitude,
		Photos:      photos,
		CreatedAt:   aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an issue domain aggregate.
func toDomain(dto IssueDTO) (*issue.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	reporterID, err := kernel.UUIDFromBytes(dto.ReporterID[:])
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

	var photos []string
	if len(dto.Photos) > 0 {
		if err = json.Unmarshal(dto.Photos, &photos); err != nil {
			return nil, err
		}
	}

	return issue.RestoreIssue(id, deliveryID, reporterID,
		issue.Type(dto.Type), issue.Severity(dto.Severity),
		issue.Status(dto.Status), dto.Description, location, photos,
		dto.CreatedAt), nil
}
