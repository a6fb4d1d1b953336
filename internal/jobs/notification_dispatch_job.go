package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"fulfillment/internal/adapters/out/notifier"
)

// NotificationDispatchJob periodically drains the notification outbox.
// Runs every five seconds so queued notifications reach recipients shortly
// after the business transaction commits.
type NotificationDispatchJob struct {
	dispatcher *notifier.Dispatcher
	cron       *cron.Cron
	logger     zerolog.Logger
}

// NewNotificationDispatchJob creates a job draining the given dispatcher.
func NewNotificationDispatchJob(dispatcher *notifier.Dispatcher, logger zerolog.Logger) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With().Str("component", "notification_dispatch_job").Logger(),
	}
}

// Start begins the dispatch job on a five second schedule.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		sent, dispatchErr := j.dispatcher.DispatchPending(ctx)
		if dispatchErr != nil {
			j.logger.Error().Err(dispatchErr).Msg("notification dispatch round failed")
			return
		}
		if sent > 0 {
			j.logger.Info().Int("sent", sent).Msg("notifications dispatched")
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Msg("notification dispatch job started (running every 5 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("notification dispatch job stopped")
}
