package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// Notification is a message for an involved party about a delivery. The
// payload is free-form, keyed data rendered by the downstream channel.
type Notification struct {
	RecipientID kernel.UUID
	DeliveryID  kernel.UUID
	Kind        string
	Message     string
	Payload     map[string]any
}

// Notification kinds emitted by the lifecycle use cases.
const (
	NotificationKindDelivered          = "DELIVERY_DELIVERED"
	NotificationKindFailed             = "DELIVERY_FAILED"
	NotificationKindValidationAccepted = "VALIDATION_ACCEPTED"
	NotificationKindValidationRejected = "VALIDATION_REJECTED"
	NotificationKindIssueReported      = "ISSUE_REPORTED"
)

// Notifier hands notifications over to an external collaborator. Calls are
// made after the business transaction commits; failures are logged by the
// implementation and never propagate into the lifecycle outcome.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
