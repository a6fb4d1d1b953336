package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fulfillment/internal/pkg/errs"
)

// Sender pushes a queued notification to its recipient over some channel.
type Sender interface {
	Send(ctx context.Context, message OutboxMessageDTO) error
}

// Dispatcher drains pending outbox messages through a Sender. One dispatch
// round reads a batch of PENDING rows in insertion order, sends each and
// marks it SENT. A message whose send fails stays PENDING and is retried on
// the next round.
type Dispatcher struct {
	db        *gorm.DB
	sender    Sender
	batchSize int
	logger    zerolog.Logger
}

// NewDispatcher creates a dispatcher reading from the given database.
func NewDispatcher(db *gorm.DB, sender Sender, batchSize int, logger zerolog.Logger) (*Dispatcher, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if batchSize <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 1000)
	}
	return &Dispatcher{
		db:        db,
		sender:    sender,
		batchSize: batchSize,
		logger:    logger.With().Str("component", "notification_dispatcher").Logger(),
	}, nil
}

// DispatchPending sends queued messages and returns how many were delivered.
func (d *Dispatcher) DispatchPending(ctx context.Context) (int, error) {
	var messages []OutboxMessageDTO
	err := d.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC, id ASC").
		Limit(d.batchSize).
		Find(&messages).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, message := range messages {
		if err = d.sender.Send(ctx, message); err != nil {
			d.logger.Error().Err(err).
				Str("messageId", message.ID.String()).
				Str("kind", message.Kind).
				Msg("notification send failed, will retry")
			continue
		}

		now := time.Now().UTC()
		err = d.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
			Where("id = ?", message.ID).
			Updates(map[string]any{"status": outboxStatusSent, "sent_at": now}).Error
		if err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// LogSender writes notifications to the application log. It stands in for a
// push gateway until one is integrated.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a sender that logs each notification.
func NewLogSender(logger zerolog.Logger) LogSender {
	return LogSender{logger: logger.With().Str("component", "log_sender").Logger()}
}

// Send logs the notification at info level.
func (s LogSender) Send(_ context.Context, message OutboxMessageDTO) error {
	s.logger.Info().
		Str("recipientId", message.RecipientID.String()).
		Str("deliveryId", message.DeliveryID.String()).
		Str("kind", message.Kind).
		Str("message", message.Message).
		RawJSON("payload", payloadOrNull(message.Payload)).
		Msg("notification delivered")
	return nil
}

func payloadOrNull(payload []byte) []byte {
	if len(payload) == 0 {
		return []byte("null")
	}
	return payload
}
