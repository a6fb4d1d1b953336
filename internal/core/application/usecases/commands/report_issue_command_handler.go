package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ReportIssueCommandHandler handles issue reporting. The issue and a
// tracking entry describing it commit as one transaction. A High or
// Critical issue reported while the package is en route escalates the
// delivery to Failed inside the same transaction, and all other involved
// parties are notified after the commit.
type ReportIssueCommandHandler struct {
	uowFactory IssueUoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
}

// NewReportIssueCommandHandler creates a handler for issue reporting
// operations.
func NewReportIssueCommandHandler(uowFactory IssueUoWFactory,
	policy services.AccessPolicy, notifier ports.Notifier,
) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

// Handle processes the issue report and returns the created issue.
func (h *ReportIssueCommandHandler) Handle(ctx context.Context,
	cmd ReportIssueCommand) (*issue.Issue, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeIssueReport(cmd.Actor(), aggregate); err != nil {
		return nil, err
	}

	reported, err := issue.NewIssue(aggregate.ID(), cmd.Actor().ID(),
		cmd.IssueType(), cmd.Severity(), cmd.Description(), cmd.Location(),
		cmd.Photos(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.IssueRepository().Add(ctx, reported); err != nil {
		return nil, err
	}

	trackingRepo := uow.TrackingRepository()

	issueEvent, err := tracking.NewEvent(aggregate.ID(), aggregate.Status(),
		cmd.Location(), fmt.Sprintf("issue reported (%s, %s): %s",
			reported.Type(), reported.Severity(), reported.Description()), now)
	if err != nil {
		return nil, err
	}
	if err = trackingRepo.Add(ctx, issueEvent); err != nil {
		return nil, err
	}

	escalated := false
	if cmd.Severity().ForcesFailure() && isEnRoute(aggregate.Status()) {
		if err = aggregate.ChangeStatus(delivery.StatusFailed, now); err != nil {
			return nil, err
		}
		if err = deliveryRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		failureEvent, eventErr := tracking.NewEvent(aggregate.ID(),
			delivery.StatusFailed, cmd.Location(),
			statusMessage(delivery.StatusFailed,
				fmt.Sprintf("%s issue: %s", reported.Severity(), reported.Type())),
			now)
		if eventErr != nil {
			return nil, eventErr
		}
		if err = trackingRepo.Add(ctx, failureEvent); err != nil {
			return nil, err
		}
		escalated = true
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyParties(ctx, aggregate, reported, escalated)

	return reported, nil
}

// isEnRoute reports whether the package is physically on its way, the window
// in which a severe issue must fail the delivery.
func isEnRoute(status delivery.Status) bool {
	switch status {
	case delivery.StatusPickedUp, delivery.StatusInTransit, delivery.StatusOutForDelivery:
		return true
	}
	return false
}

// notifyParties fans the report out to every involved party except the
// reporter. Runs after the commit.
func (h *ReportIssueCommandHandler) notifyParties(ctx context.Context,
	aggregate *delivery.Delivery, reported *issue.Issue, escalated bool) {
	recipients := []*kernel.UUID{ptr(aggregate.ClientID()),
		aggregate.CourierID(), aggregate.MerchantID()}

	for _, recipient := range recipients {
		if recipient == nil || recipient.IsEqual(reported.ReporterID()) {
			continue
		}

		_ = h.notifier.Notify(ctx, ports.Notification{
			RecipientID: *recipient,
			DeliveryID:  aggregate.ID(),
			Kind:        ports.NotificationKindIssueReported,
			Message: fmt.Sprintf("issue reported (%s, %s): %s",
				reported.Type(), reported.Severity(), reported.Description()),
			Payload: map[string]any{
				"issueId":   reported.ID().String(),
				"type":      reported.Type().String(),
				"severity":  reported.Severity().String(),
				"escalated": escalated,
			},
		})
	}
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
