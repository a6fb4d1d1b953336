package issue

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	// MaxDescriptionLength bounds the free-form description of an issue.
	MaxDescriptionLength = 1000

	// MaxPhotos bounds the number of photo references attached to a report.
	MaxPhotos = 10
)

// Issue is a problem reported against a delivery. An issue is created once
// per report and is immutable afterwards; the resolution workflow that moves
// it past Open is handled by a separate subsystem.
type Issue struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	reporterID kernel.UUID

	issueType   Type
	severity    Severity
	status      Status
	description string
	location    *kernel.Location
	photos      []string

	createdAt time.Time

	isConstructed bool
}

// NewIssue creates a new open Issue for a delivery.
func NewIssue(deliveryID kernel.UUID, reporterID kernel.UUID, issueType Type,
	severity Severity, description string, location *kernel.Location,
	photos []string, now time.Time) (*Issue, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredError("deliveryID")
	}
	if err := reporterID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredError("reporterID")
	}
	if err := issueType.Validate(); err != nil {
		return nil, err
	}
	if err := severity.Validate(); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if len(description) > MaxDescriptionLength {
		return nil, errs.NewValueIsOutOfRangeError("description length",
			len(description), 1, MaxDescriptionLength)
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if len(photos) > MaxPhotos {
		return nil, errs.NewValueIsOutOfRangeError("photos count",
			len(photos), 0, MaxPhotos)
	}
	for _, photo := range photos {
		if photo == "" {
			return nil, errs.NewValueIsRequiredError("photo reference")
		}
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &Issue{
		id:            kernel.NewUUID(),
		deliveryID:    deliveryID,
		reporterID:    reporterID,
		issueType:     issueType,
		severity:      severity,
		status:        StatusOpen,
		description:   description,
		location:      location,
		photos:        photos,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreIssue reconstructs an Issue from persisted state without invariant
// checks beyond construction marking.
func RestoreIssue(id kernel.UUID, deliveryID kernel.UUID, reporterID kernel.UUID,
	issueType Type, severity Severity, status Status, description string,
	location *kernel.Location, photos []string, createdAt time.Time) *Issue {
	return &Issue{
		id:            id,
		deliveryID:    deliveryID,
		reporterID:    reporterID,
		issueType:     issueType,
		severity:      severity,
		status:        status,
		description:   description,
		location:      location,
		photos:        photos,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

// Validate checks if the Issue is correctly constructed.
func (i *Issue) Validate() error {
	if !i.isConstructed {
		return ErrIssueIsNotConstructed
	}
	return nil
}

// ErrIssueIsNotConstructed is returned when an Issue was created bypassing
// its constructor.
var ErrIssueIsNotConstructed = errs.NewValueIsRequiredError("issue must be created via NewIssue or RestoreIssue")

// ID returns the issue identifier.
func (i *Issue) ID() kernel.UUID {
	return i.id
}

// DeliveryID returns the identifier of the delivery the issue belongs to.
func (i *Issue) DeliveryID() kernel.UUID {
	return i.deliveryID
}

// ReporterID returns the identifier of the actor who reported the issue.
func (i *Issue) ReporterID() kernel.UUID {
	return i.reporterID
}

// Type returns the issue classification.
func (i *Issue) Type() Type {
	return i.issueType
}

// Severity returns the issue severity.
func (i *Issue) Severity() Severity {
	return i.severity
}

// Status returns the resolution status.
func (i *Issue) Status() Status {
	return i.status
}

// Description returns the free-form description.
func (i *Issue) Description() string {
	return i.description
}

// Location returns where the issue was reported, when known.
func (i *Issue) Location() *kernel.Location {
	return i.location
}

// Photos returns the opaque photo references attached to the report.
func (i *Issue) Photos() []string {
	return i.photos
}

// CreatedAt returns when the issue was reported.
func (i *Issue) CreatedAt() time.Time {
	return i.createdAt
}
