package notifier

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"fulfillment/internal/core/ports"
)

// Outbox row statuses.
const (
	outboxStatusPending = "PENDING"
	outboxStatusSent    = "SENT"
)

// OutboxMessageDTO is the database representation of a queued notification.
type OutboxMessageDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null"`
	DeliveryID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind        string         `gorm:"not null"`
	Message     string         `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	Status      string         `gorm:"not null;index;default:PENDING"`
	CreatedAt   time.Time      `gorm:"not null"`
	SentAt      *time.Time
}

// TableName returns the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "notification_outbox"
}

func fromNotification(notification ports.Notification, now time.Time) (OutboxMessageDTO, error) {
	dto := OutboxMessageDTO{
		ID:          uuid.New(),
		RecipientID: notification.RecipientID.Bytes(),
		DeliveryID:  notification.DeliveryID.Bytes(),
		Kind:        notification.Kind,
		Message:     notification.Message,
		Status:      outboxStatusPending,
		CreatedAt:   now,
	}

	if notification.Payload != nil {
		raw, err := json.Marshal(notification.Payload)
		if err != nil {
			return OutboxMessageDTO{}, err
		}
		dto.Payload = datatypes.JSON(raw)
	}

	return dto, nil
}
