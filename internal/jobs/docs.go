// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager which starts and stops them as a group:
//
//	jobManager := jobs.NewJobManager(dispatcher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// NotificationDispatchJob drains the notification outbox every few seconds
// so that client and courier notifications leave the system shortly after
// the transaction that queued them commits.
package jobs
