package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand represents a request to record a problem with a
// delivery. Description, photo and severity bounds are enforced by the
// issue aggregate when the report is applied.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	actor       auth.Actor
	issueType   issue.Type
	severity    issue.Severity
	description string
	location    *kernel.Location
	photos      []string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to report a delivery issue.
func NewReportIssueCommand(deliveryID kernel.UUID, actor auth.Actor,
	issueType issue.Type, severity issue.Severity, description string,
	location *kernel.Location, photos []string,
) (ReportIssueCommand, error) {
	issueCommand := ReportIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		issueCommand.setDeliveryID(deliveryID),
		issueCommand.setActor(actor),
		issueCommand.setIssueType(issueType),
		issueCommand.setSeverity(severity),
		issueCommand.setLocation(location),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	issueCommand.description = description
	issueCommand.photos = photos

	return issueCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery the issue concerns.
func (c ReportIssueCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the reporting party.
func (c ReportIssueCommand) Actor() auth.Actor {
	return c.actor
}

// IssueType returns the issue classification.
func (c ReportIssueCommand) IssueType() issue.Type {
	return c.issueType
}

// Severity returns the reported severity.
func (c ReportIssueCommand) Severity() issue.Severity {
	return c.severity
}

// Description returns the free-form description.
func (c ReportIssueCommand) Description() string {
	return c.description
}

// Location returns where the issue happened, when known.
func (c ReportIssueCommand) Location() *kernel.Location {
	return c.location
}

// Photos returns the opaque photo references attached to the report.
func (c ReportIssueCommand) Photos() []string {
	return c.photos
}

func (c *ReportIssueCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ReportIssueCommand) setActor(actor auth.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReportIssueCommand) setIssueType(issueType issue.Type) error {
	if err := issueType.Validate(); err != nil {
		return err
	}

	c.issueType = issueType
	return nil
}

func (c *ReportIssueCommand) setSeverity(severity issue.Severity) error {
	if err := severity.Validate(); err != nil {
		return err
	}

	c.severity = severity
	return nil
}

func (c *ReportIssueCommand) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	c.location = location
	return nil
}
