package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/pkg/errs"
)

// AccessPolicy is a domain service that decides which actor may perform which
// lifecycle operation on a delivery.
//
// Business rules:
//   - Admins may perform every operation.
//   - Assigning is allowed for a courier claiming an unassigned delivery or
//     acting on their own assignment.
//   - Cancelling is additionally allowed for the delivery's client.
//   - All other status changes require the assigned courier.
//   - Client validation is reserved for the delivery's client.
//   - Issue reporting is open to every involved party.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// AuthorizeStatusChange checks whether actor may move the delivery to
// newStatus. The rule depends on the target status, not the current one.
func (p AccessPolicy) AuthorizeStatusChange(actor auth.Actor, d *delivery.Delivery,
	newStatus delivery.Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if actor.IsAdmin() {
		return nil
	}

	action := fmt.Sprintf("change delivery status to %s", newStatus)

	switch newStatus {
	case delivery.StatusAssigned:
		// A courier may claim an unassigned delivery or re-confirm their
		// own assignment, never take one that belongs to another courier.
		if actor.Role() == auth.RoleCourier &&
			(d.CourierID() == nil || actor.Is(*d.CourierID())) {
			return nil
		}
	case delivery.StatusCancelled:
		if actor.Role() == auth.RoleClient && actor.Is(d.ClientID()) {
			return nil
		}
		if p.isAssignedCourier(actor, d) {
			return nil
		}
	default:
		if p.isAssignedCourier(actor, d) {
			return nil
		}
	}

	return errs.NewNotAuthorizedError(actor.Role().String(), action)
}

// AuthorizeValidation checks whether actor may submit the client validation
// verdict for the delivery. Only the delivery's own client qualifies.
func (p AccessPolicy) AuthorizeValidation(actor auth.Actor, d *delivery.Delivery) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if actor.Role() == auth.RoleClient && actor.Is(d.ClientID()) {
		return nil
	}
	return errs.NewNotAuthorizedError(actor.Role().String(), "validate delivery")
}

// AuthorizeIssueReport checks whether actor may report an issue against the
// delivery. Admins and every involved party qualify.
func (p AccessPolicy) AuthorizeIssueReport(actor auth.Actor, d *delivery.Delivery) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if p.isInvolved(actor, d) {
		return nil
	}
	return errs.NewNotAuthorizedError(actor.Role().String(), "report delivery issue")
}

// AuthorizeIssueView checks whether actor may list the delivery's issues.
// The audience is the same as for reporting.
func (p AccessPolicy) AuthorizeIssueView(actor auth.Actor, d *delivery.Delivery) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if p.isInvolved(actor, d) {
		return nil
	}
	return errs.NewNotAuthorizedError(actor.Role().String(), "view delivery issues")
}

// AuthorizeTrackingView checks whether actor may read the delivery's tracking
// history.
func (p AccessPolicy) AuthorizeTrackingView(actor auth.Actor, d *delivery.Delivery) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if actor.IsAdmin() {
		return nil
	}
	if actor.Role() == auth.RoleClient && actor.Is(d.ClientID()) {
		return nil
	}
	if p.isAssignedCourier(actor, d) {
		return nil
	}
	return errs.NewNotAuthorizedError(actor.Role().String(), "view delivery tracking")
}

func (p AccessPolicy) isAssignedCourier(actor auth.Actor, d *delivery.Delivery) bool {
	return actor.Role() == auth.RoleCourier &&
		d.CourierID() != nil && actor.Is(*d.CourierID())
}

func (p AccessPolicy) isInvolved(actor auth.Actor, d *delivery.Delivery) bool {
	if actor.IsAdmin() {
		return true
	}
	switch actor.Role() {
	case auth.RoleClient:
		return actor.Is(d.ClientID())
	case auth.RoleCourier:
		return d.CourierID() != nil && actor.Is(*d.CourierID())
	case auth.RoleMerchant:
		return d.MerchantID() != nil && actor.Is(*d.MerchantID())
	}
	return false
}
