package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.Notifier = &OutboxNotifier{}

// OutboxNotifier implements ports.Notifier by inserting notifications into
// the notification_outbox table. Delivery to the recipient happens
// asynchronously via the dispatch job.
type OutboxNotifier struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewOutboxNotifier creates a notifier backed by the given database.
func NewOutboxNotifier(db *gorm.DB, logger zerolog.Logger) (*OutboxNotifier, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &OutboxNotifier{
		db:     db,
		logger: logger.With().Str("component", "outbox_notifier").Logger(),
	}, nil
}

// Notify queues a notification for asynchronous delivery.
func (n *OutboxNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	dto, err := fromNotification(notification, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = n.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	n.logger.Debug().
		Str("kind", notification.Kind).
		Str("deliveryId", notification.DeliveryID.String()).
		Str("recipientId", notification.RecipientID.String()).
		Msg("notification queued")
	return nil
}
