package wallet

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// EntryType marks what a ledger entry pays for.
type EntryType int

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeDeliveryCommission
)

func getEntryTypeNames() map[EntryType]string {
	return map[EntryType]string{
		EntryTypeDeliveryCommission: "DELIVERY_COMMISSION",
	}
}

// ParseEntryType converts a wire-format entry type name into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	for et, name := range getEntryTypeNames() {
		if name == s {
			return et, nil
		}
	}
	return EntryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("entry type",
		fmt.Errorf("%q is not a valid entry type", s))
}

// String returns the wire-format name of the entry type.
func (et EntryType) String() string {
	if name, ok := getEntryTypeNames()[et]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate checks if the EntryType value is valid.
func (et EntryType) Validate() error {
	if _, ok := getEntryTypeNames()[et]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entry type",
			fmt.Errorf("%d is not a valid entry type", et))
	}
	return nil
}

// EntryStatus is the settlement state of a ledger entry. Credits settle
// immediately, so entries are written as Completed.
type EntryStatus int

const (
	EntryStatusUnknown EntryStatus = iota
	EntryStatusCompleted
)

func getEntryStatusNames() map[EntryStatus]string {
	return map[EntryStatus]string{
		EntryStatusCompleted: "COMPLETED",
	}
}

// ParseEntryStatus converts a wire-format entry status name into an EntryStatus.
func ParseEntryStatus(s string) (EntryStatus, error) {
	for es, name := range getEntryStatusNames() {
		if name == s {
			return es, nil
		}
	}
	return EntryStatusUnknown, errs.NewValueIsInvalidErrorWithCause("entry status",
		fmt.Errorf("%q is not a valid entry status", s))
}

// String returns the wire-format name of the entry status.
func (es EntryStatus) String() string {
	if name, ok := getEntryStatusNames()[es]; ok {
		return name
	}
	return "UNKNOWN"
}

// LedgerEntry records a single credit against a courier's wallet. Entries are
// append only and never modified.
type LedgerEntry struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	courierID  kernel.UUID
	amount     kernel.Money
	entryType  EntryType
	status     EntryStatus
	createdAt  time.Time

	isConstructed bool
}

// NewLedgerEntry creates a completed ledger entry for a delivery commission.
func NewLedgerEntry(deliveryID, courierID kernel.UUID, amount kernel.Money,
	entryType EntryType, now time.Time) (*LedgerEntry, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredError("deliveryID")
	}
	if err := courierID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredError("courierID")
	}
	if amount.IsZero() {
		return nil, errs.NewValueIsRequiredError("amount")
	}
	if err := entryType.Validate(); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return &LedgerEntry{
		id:            kernel.NewUUID(),
		deliveryID:    deliveryID,
		courierID:     courierID,
		amount:        amount,
		entryType:     entryType,
		status:        EntryStatusCompleted,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreLedgerEntry reconstructs a LedgerEntry from persisted state.
func RestoreLedgerEntry(id, deliveryID, courierID kernel.UUID,
	amount kernel.Money, entryType EntryType, status EntryStatus,
	createdAt time.Time) *LedgerEntry {
	return &LedgerEntry{
		id:            id,
		deliveryID:    deliveryID,
		courierID:     courierID,
		amount:        amount,
		entryType:     entryType,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

// ErrLedgerEntryIsNotConstructed is returned when a LedgerEntry was created
// bypassing its constructor.
var ErrLedgerEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"ledger entry must be created via NewLedgerEntry or RestoreLedgerEntry")

// Validate checks if the LedgerEntry is correctly constructed.
func (e *LedgerEntry) Validate() error {
	if !e.isConstructed {
		return ErrLedgerEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *LedgerEntry) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the delivery the entry pays for.
func (e *LedgerEntry) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// CourierID returns the credited courier's identifier.
func (e *LedgerEntry) CourierID() kernel.UUID {
	return e.courierID
}

// Amount returns the credited amount.
func (e *LedgerEntry) Amount() kernel.Money {
	return e.amount
}

// EntryType returns what the entry pays for.
func (e *LedgerEntry) EntryType() EntryType {
	return e.entryType
}

// Status returns the settlement state.
func (e *LedgerEntry) Status() EntryStatus {
	return e.status
}

// CreatedAt returns when the entry was written.
func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}
