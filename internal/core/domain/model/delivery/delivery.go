package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Commission is the platform's cut of the delivery price paid to the courier
// on successful client validation, expressed as a fraction.
const (
	CommissionNum = 10
	CommissionDen = 100
)

// Client rating and review bounds, enforced on finalization.
const (
	MinClientRating       = 1
	MaxClientRating       = 5
	MaxClientReviewLength = 500
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery factory methods.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root for the fulfillment lifecycle. It owns the
// delivery's status and every client-validation outcome field.
//
// Delivery follows these invariants:
//   - Must have valid identifiers for itself and its client
//   - Price must be positive
//   - Status transitions follow the transition table
//   - Client validation happens exactly once, at the InTransit checkpoint
//   - Can only be created through its factory methods
//
// The version field supports optimistic concurrency control: repositories
// match on it when updating and increment it on success.
type Delivery struct {
	id         kernel.UUID
	clientID   kernel.UUID
	courierID  *kernel.UUID
	merchantID *kernel.UUID
	price      kernel.Money
	status     Status
	version    int

	clientValidated    *bool
	clientValidatedAt  *time.Time
	clientRating       *int
	clientReview       *string
	clientIssues       []IssueSummary
	actualDeliveryDate *time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status.
// Deliveries are created by the upstream matching process; courier and
// merchant may be attached at creation or later.
func NewDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	courierID *kernel.UUID,
	merchantID *kernel.UUID,
	price kernel.Money,
) (*Delivery, error) {
	d := &Delivery{
		status:        StatusPending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setClientID(clientID),
		d.setCourierID(courierID),
		d.setMerchantID(merchantID),
		d.setPrice(price),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence without running
// creation-time business rules. The caller is responsible for passing the
// persisted state verbatim.
func RestoreDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	courierID *kernel.UUID,
	merchantID *kernel.UUID,
	price kernel.Money,
	status Status,
	version int,
	clientValidated *bool,
	clientValidatedAt *time.Time,
	clientRating *int,
	clientReview *string,
	clientIssues []IssueSummary,
	actualDeliveryDate *time.Time,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), clientID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}

	return &Delivery{
		id:                 id,
		clientID:           clientID,
		courierID:          courierID,
		merchantID:         merchantID,
		price:              price,
		status:             status,
		version:            version,
		clientValidated:    clientValidated,
		clientValidatedAt:  clientValidatedAt,
		clientRating:       clientRating,
		clientReview:       clientReview,
		clientIssues:       clientIssues,
		actualDeliveryDate: actualDeliveryDate,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ClientID returns the receiving client's identifier.
func (d *Delivery) ClientID() kernel.UUID {
	return d.clientID
}

// CourierID returns the assigned courier's identifier, or nil if unassigned.
func (d *Delivery) CourierID() *kernel.UUID {
	return d.courierID
}

// MerchantID returns the associated merchant's identifier, or nil if none.
func (d *Delivery) MerchantID() *kernel.UUID {
	return d.merchantID
}

// Price returns the delivery price.
func (d *Delivery) Price() kernel.Money {
	return d.price
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Version returns the optimistic concurrency version.
func (d *Delivery) Version() int {
	return d.version
}

// AdvanceVersion moves the aggregate to the next concurrency version.
// Repositories call it after a successful write so the in-memory aggregate
// matches the persisted row.
func (d *Delivery) AdvanceVersion() {
	d.version++
}

// ClientValidated returns the client's validation verdict, or nil if the
// delivery has not reached the validation checkpoint.
func (d *Delivery) ClientValidated() *bool {
	return d.clientValidated
}

// ClientValidatedAt returns when the client validated, or nil.
func (d *Delivery) ClientValidatedAt() *time.Time {
	return d.clientValidatedAt
}

// ClientRating returns the client's rating, or nil.
func (d *Delivery) ClientRating() *int {
	return d.clientRating
}

// ClientReview returns the client's review text, or nil.
func (d *Delivery) ClientReview() *string {
	return d.clientReview
}

// ClientIssues returns the structured issues the client attached on rejection.
func (d *Delivery) ClientIssues() []IssueSummary {
	return d.clientIssues
}

// ActualDeliveryDate returns when the delivery completed successfully, or nil.
func (d *Delivery) ActualDeliveryDate() *time.Time {
	return d.actualDeliveryDate
}

// CommissionAmount returns the courier's commission for this delivery:
// the commission fraction of the price, rounded half up to the cent.
func (d *Delivery) CommissionAmount() kernel.Money {
	return d.price.Fraction(CommissionNum, CommissionDen)
}

// ChangeStatus transitions the delivery to a new status.
//
// The transition must be present in the transition table; otherwise a
// StatusConflictError carrying the current status and the legal next-status
// set is returned and the delivery is left unchanged. Reaching Delivered
// records the actual delivery date.
func (d *Delivery) ChangeStatus(to Status, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !IsTransitionAllowed(d.status, to) {
		return errs.NewStatusConflictError(d.status.String(), NextStatusNames(d.status))
	}

	d.status = to
	if to == StatusDelivered {
		d.actualDeliveryDate = &now
	}
	return nil
}

// Finalize records the client's validation verdict at the InTransit
// checkpoint. Acceptance moves the delivery to Delivered and records the
// actual delivery date; rejection moves it to Failed and keeps the client's
// structured issues. Any other current status is a conflict, including
// repeated finalization of an already-terminal delivery.
func (d *Delivery) Finalize(
	validated bool,
	rating *int,
	review *string,
	issues []IssueSummary,
	now time.Time,
) error {
	if d.status != StatusInTransit {
		return errs.NewStatusConflictError(d.status.String(), []string{StatusInTransit.String()})
	}
	if rating != nil && (*rating < MinClientRating || *rating > MaxClientRating) {
		return errs.NewValueIsOutOfRangeError("rating", *rating, MinClientRating, MaxClientRating)
	}
	if review != nil && len(*review) > MaxClientReviewLength {
		return errs.NewValueIsInvalidErrorWithCause("review",
			fmt.Errorf("%d characters exceeds the %d character limit", len(*review), MaxClientReviewLength))
	}

	if validated {
		d.status = StatusDelivered
		d.actualDeliveryDate = &now
	} else {
		d.status = StatusFailed
	}

	verdict := validated
	validatedAt := now
	d.clientValidated = &verdict
	d.clientValidatedAt = &validatedAt
	d.clientRating = rating
	d.clientReview = review
	d.clientIssues = issues
	return nil
}

// AssignCourier attaches a courier to the delivery. A delivery that already
// belongs to a different courier cannot be taken over.
func (d *Delivery) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}
	if d.courierID != nil && !d.courierID.IsEqual(courierID) {
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("delivery is already assigned to courier %s", d.courierID))
	}
	d.courierID = &courierID
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	d.clientID = id
	return nil
}

func (d *Delivery) setCourierID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courierId", err)
	}
	d.courierID = id
	return nil
}

func (d *Delivery) setMerchantID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("merchantId", err)
	}
	d.merchantID = id
	return nil
}

func (d *Delivery) setPrice(price kernel.Money) error {
	if price.IsZero() {
		return errs.NewValueIsRequiredError("price")
	}
	d.price = price
	return nil
}
