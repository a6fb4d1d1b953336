package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure deliveries
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//	   │            │            │            │                │
//	   │            │            └──> Failed <┴────────────────┘
//	   │            │                   │ │
//	   │            └<──────────────────┘ │
//	   └──────────> Cancelled <───────────┘
//
// Delivered and Cancelled are terminal. Failed deliveries can be re-assigned
// for another attempt or cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a matched delivery awaiting assignment.
	StatusPending

	// StatusAssigned indicates a courier has accepted the delivery.
	StatusAssigned

	// StatusPickedUp indicates the courier has collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is moving toward its destination.
	// This is the single checkpoint at which the client validates the outcome.
	StatusInTransit

	// StatusOutForDelivery indicates the courier is on the final leg.
	StatusOutForDelivery

	// StatusDelivered indicates successful completion. Terminal.
	StatusDelivered

	// StatusFailed indicates a failed attempt. The delivery can be re-assigned
	// or cancelled from here.
	StatusFailed

	// StatusCancelled indicates the delivery was abandoned. Terminal.
	StatusCancelled
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusAssigned:       "ASSIGNED",
		StatusPickedUp:       "PICKED_UP",
		StatusInTransit:      "IN_TRANSIT",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusFailed:         "FAILED",
		StatusCancelled:      "CANCELLED",
	}
}

func getValidStatusNames() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "PENDING",
		StatusAssigned:       "ASSIGNED",
		StatusPickedUp:       "PICKED_UP",
		StatusInTransit:      "IN_TRANSIT",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusFailed:         "FAILED",
		StatusCancelled:      "CANCELLED",
	}
}

// ParseStatus converts a wire-format status name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusNames() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return len(nextStatuses(s)) == 0 && s.Validate() == nil
}

// Progress returns a coarse completion percentage derived from the status,
// used by the tracking view.
func (s Status) Progress() int {
	switch s {
	case StatusAssigned:
		return 10
	case StatusPickedUp:
		return 25
	case StatusInTransit:
		return 50
	case StatusOutForDelivery:
		return 75
	case StatusDelivered:
		return 100
	default:
		return 0
	}
}
