package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler handles the business logic for status
// changes. Loads the delivery, authorizes the actor, applies the transition
// and writes the status together with its tracking event in one transaction.
// On terminal outcomes the client is notified after the commit.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status change
// operations.
func NewUpdateDeliveryStatusCommandHandler(uowFactory LifecycleUoWFactory,
	policy services.AccessPolicy, notifier ports.Notifier,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

// Handle processes the status change command and returns the updated
// delivery.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdateDeliveryStatusCommand) (*delivery.Delivery, error) {
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

	if err = h.policy.AuthorizeStatusChange(cmd.Actor(), aggregate, cmd.NewStatus()); err != nil {
		return nil, err
	}

	// A courier claiming an unassigned delivery becomes its courier.
	if cmd.NewStatus() == delivery.StatusAssigned &&
		cmd.Actor().Role() == auth.RoleCourier && aggregate.CourierID() == nil {
		if err = aggregate.AssignCourier(cmd.Actor().ID()); err != nil {
			return nil, err
		}
	}

	if err = aggregate.ChangeStatus(cmd.NewStatus(), now); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := tracking.NewEvent(aggregate.ID(), aggregate.Status(),
		cmd.Location(), statusMessage(aggregate.Status(), cmd.Notes()), now)
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyClient(ctx, aggregate)

	return aggregate, nil
}

// notifyClient tells the client about terminal outcomes. Runs after the
// commit; delivery state is already durable, so errors are swallowed here
// and surfaced by the notifier's own logging.
func (h *UpdateDeliveryStatusCommandHandler) notifyClient(ctx context.Context,
	aggregate *delivery.Delivery) {
	var kind string
	switch aggregate.Status() {
	case delivery.StatusDelivered:
		kind = ports.NotificationKindDelivered
	case delivery.StatusFailed:
		kind = ports.NotificationKindFailed
	default:
		return
	}

	_ = h.notifier.Notify(ctx, ports.Notification{
		RecipientID: aggregate.ClientID(),
		DeliveryID:  aggregate.ID(),
		Kind:        kind,
		Message:     statusMessage(aggregate.Status(), ""),
		Payload: map[string]any{
			"status": aggregate.Status().String(),
		},
	})
}
