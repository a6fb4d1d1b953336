// Package notifier persists outbound notifications in a database outbox.
//
// Notifications are written as PENDING rows after the business transaction
// commits and are picked up by the dispatch job, which pushes them through a
// Sender and marks them SENT. A lost notification is acceptable; a blocked
// lifecycle operation is not, so Notify never participates in the business
// transaction.
package notifier
