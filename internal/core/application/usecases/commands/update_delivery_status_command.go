package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a request to move a delivery to a
// new lifecycle status on behalf of an actor. Location and notes are
// optional context recorded in the tracking history.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      auth.Actor
	newStatus  delivery.Status
	location   *kernel.Location
	notes      string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to change a delivery's
// status. Validates the delivery ID, the acting party and the target status.
func NewUpdateDeliveryStatusCommand(deliveryID kernel.UUID, actor auth.Actor,
	newStatus delivery.Status, location *kernel.Location, notes string,
) (UpdateDeliveryStatusCommand, error) {
	statusCommand := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setDeliveryID(deliveryID),
		statusCommand.setActor(actor),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setLocation(location),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	statusCommand.notes = notes

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to update.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the party requesting the status change.
func (c UpdateDeliveryStatusCommand) Actor() auth.Actor {
	return c.actor
}

// NewStatus returns the requested target status.
func (c UpdateDeliveryStatusCommand) NewStatus() delivery.Status {
	return c.newStatus
}

// Location returns where the status change happened, when known.
func (c UpdateDeliveryStatusCommand) Location() *kernel.Location {
	return c.location
}

// Notes returns the free-form notes attached to the change.
func (c UpdateDeliveryStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setActor(actor auth.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateDeliveryStatusCommand) setNewStatus(newStatus delivery.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateDeliveryStatusCommand) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	c.location = location
	return nil
}
