// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern for
// the delivery aggregate, handling the conversion between domain entities and
// database representations.
package deliveryrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The version column drives optimistic concurrency control on
// every update.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID  `gorm:"type:uuid;index"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	MerchantID         *uuid.UUID `gorm:"type:uuid;index"`
	PriceCents         int64
	Status             int `gorm:"index"`
	Version            int
	ClientValidated    *bool
	ClientValidatedAt  *time.Time
	ClientRating       *int
	ClientReview       *string
	ClientIssues       datatypes.JSON `gorm:"type:jsonb"`
	ActualDeliveryDate *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// issueSummaryDTO is the JSON shape of one structured client issue inside the
// client_issues column.
type issueSummaryDTO struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(aggregate *delivery.Delivery) (DeliveryDTO, error) {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var merchantID *uuid.UUID
	if id := aggregate.MerchantID(); id != nil {
		raw := id.Bytes()
		merchantID = &raw
	}

	var clientIssues datatypes.JSON
	if summaries := aggregate.ClientIssues(); len(summaries) > 0 {
		dtos := make([]issueSummaryDTO, 0, len(summaries))
		for _, summary := range summaries {
			dtos = append(dtos, issueSummaryDTO{
				Type:        summary.Type(),
				Description: summary.Description(),
			})
		}

		raw, err := json.Marshal(dtos)
		if err != nil {
			return DeliveryDTO{}, err
		}
		clientIssues = raw
	}

	return DeliveryDTO{
		ID:                 aggregate.ID().Bytes(),
		ClientID:           aggregate.ClientID().Bytes(),
		CourierID:          courierID,
		MerchantID:         merchantID,
		PriceCents:         aggregate.Price().Cents(),
		Status:             int(aggregate.Status()),
		Version:            aggregate.Version(),
		ClientValidated:    aggregate.ClientValidated(),
		ClientValidatedAt:  aggregate.ClientValidatedAt(),
		ClientRating:       aggregate.ClientRating(),
		ClientReview:       aggregate.ClientReview(),
		ClientIssues:       clientIssues,
		ActualDeliveryDate: aggregate.ActualDeliveryDate(),
	}, nil
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := optionalUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	merchantID, err := optionalUUID(dto.MerchantID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromCents(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	var clientIssues []delivery.IssueSummary
	if len(dto.ClientIssues) > 0 {
		var dtos []issueSummaryDTO
		if err = json.Unmarshal(dto.ClientIssues, &dtos); err != nil {
			return nil, err
		}

		clientIssues = make([]delivery.IssueSummary, 0, len(dtos))
		for _, summaryDTO := range dtos {
			summary, summaryErr := delivery.NewIssueSummary(
				summaryDTO.Type, summaryDTO.Description)
			if summaryErr != nil {
				return nil, summaryErr
			}
			clientIssues = append(clientIssues, summary)
		}
	}

	return delivery.RestoreDelivery(
		id,
		clientID,
		courierID,
		merchantID,
		price,
		delivery.Status(dto.Status),
		dto.Version,
		dto.ClientValidated,
		dto.ClientValidatedAt,
		dto.ClientRating,
		dto.ClientReview,
		clientIssues,
		dto.ActualDeliveryDate,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
