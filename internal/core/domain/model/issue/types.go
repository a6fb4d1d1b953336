package issue

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type classifies what went wrong with a delivery.
type Type int

const (
	TypeUnknown Type = iota
	TypeAddressIssue
	TypeDamagedPackage
	TypeRecipientUnavailable
	TypeWrongItem
	TypeLostPackage
	TypeDelayedDelivery
	TypeOther
)

func getTypeNames() map[Type]string {
	return map[Type]string{
		TypeAddressIssue:         "ADDRESS_ISSUE",
		TypeDamagedPackage:       "DAMAGED_PACKAGE",
		TypeRecipientUnavailable: "RECIPIENT_UNAVAILABLE",
		TypeWrongItem:            "WRONG_ITEM",
		TypeLostPackage:          "LOST_PACKAGE",
		TypeDelayedDelivery:      "DELAYED_DELIVERY",
		TypeOther:                "OTHER",
	}
}

// ParseType converts a wire-format type name into a Type.
func ParseType(s string) (Type, error) {
	for t, name := range getTypeNames() {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("issue type",
		fmt.Errorf("%q is not a valid issue type", s))
}

// String returns the wire-format name of the type.
func (t Type) String() string {
	if name, ok := getTypeNames()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getTypeNames()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("issue type",
			fmt.Errorf("%d is not a valid issue type", t))
	}
	return nil
}

// Severity grades how badly an issue affects the delivery.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func getSeverityNames() map[Severity]string {
	return map[Severity]string{
		SeverityLow:      "LOW",
		SeverityMedium:   "MEDIUM",
		SeverityHigh:     "HIGH",
		SeverityCritical: "CRITICAL",
	}
}

// ParseSeverity converts a wire-format severity name into a Severity.
func ParseSeverity(s string) (Severity, error) {
	for sev, name := range getSeverityNames() {
		if name == s {
			return sev, nil
		}
	}
	return SeverityUnknown, errs.NewValueIsInvalidErrorWithCause("severity",
		fmt.Errorf("%q is not a valid severity", s))
}

// String returns the wire-format name of the severity.
func (s Severity) String() string {
	if name, ok := getSeverityNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks if the Severity value is valid.
func (s Severity) Validate() error {
	if _, ok := getSeverityNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("severity",
			fmt.Errorf("%d is not a valid severity", s))
	}
	return nil
}

// ForcesFailure reports whether an issue of this severity must force the
// delivery to FAILED when reported while the package is en route.
func (s Severity) ForcesFailure() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// Status tracks the resolution workflow of an issue. Only Open is assigned by
// this subsystem; the resolution workflow lives elsewhere.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusInProgress
	StatusResolved
	StatusClosed
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		StatusOpen:       "OPEN",
		StatusInProgress: "IN_PROGRESS",
		StatusResolved:   "RESOLVED",
		StatusClosed:     "CLOSED",
	}
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("issue status",
			fmt.Errorf("%d is not a valid issue status", s))
	}
	return nil
}
