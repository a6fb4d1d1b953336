package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrValidateDeliveryCommandIsNotConstructed = errors.New(
	"ValidateDeliveryCommand must be created via NewValidateDeliveryCommand constructor",
)

// ValidateDeliveryCommand represents a client's verdict on a delivered
// package: accept it, optionally with a rating and review, or reject it with
// the problems found. Rating, review and issue bounds are enforced by the
// delivery aggregate when the verdict is applied.
type ValidateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      auth.Actor
	validated  bool
	rating     *int
	review     *string
	issues     []delivery.IssueSummary

	guard guard.ConstructorGuard
}

// NewValidateDeliveryCommand creates a command carrying the client's verdict.
func NewValidateDeliveryCommand(deliveryID kernel.UUID, actor auth.Actor,
	validated bool, rating *int, review *string, issues []delivery.IssueSummary,
) (ValidateDeliveryCommand, error) {
	validateCommand := ValidateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateCommand.setDeliveryID(deliveryID),
		validateCommand.setActor(actor),
	); err != nil {
		return ValidateDeliveryCommand{}, err
	}

	validateCommand.validated = validated
	validateCommand.rating = rating
	validateCommand.review = review
	validateCommand.issues = issues

	return validateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrValidateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being validated.
func (c ValidateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the client submitting the verdict.
func (c ValidateDeliveryCommand) Actor() auth.Actor {
	return c.actor
}

// Validated returns whether the client accepted the delivery.
func (c ValidateDeliveryCommand) Validated() bool {
	return c.validated
}

// Rating returns the optional 1..5 client rating.
func (c ValidateDeliveryCommand) Rating() *int {
	return c.rating
}

// Review returns the optional free-form client review.
func (c ValidateDeliveryCommand) Review() *string {
	return c.review
}

// Issues returns the structured problems submitted with a rejection.
func (c ValidateDeliveryCommand) Issues() []delivery.IssueSummary {
	return c.issues
}

func (c *ValidateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ValidateDeliveryCommand) setActor(actor auth.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
