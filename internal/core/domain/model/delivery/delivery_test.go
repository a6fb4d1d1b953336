package delivery_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	return m
}

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	courierID := kernel.NewUUID()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		&courierID,
		nil,
		mustMoney(t, 5990),
	)
	require.NoError(t, err)
	return d
}

func advanceTo(t *testing.T, d *delivery.Delivery, target delivery.Status) {
	t.Helper()
	path := map[delivery.Status][]delivery.Status{
		delivery.StatusAssigned:       {delivery.StatusAssigned},
		delivery.StatusPickedUp:       {delivery.StatusAssigned, delivery.StatusPickedUp},
		delivery.StatusInTransit:      {delivery.StatusAssigned, delivery.StatusPickedUp, delivery.StatusInTransit},
		delivery.StatusOutForDelivery: {delivery.StatusAssigned, delivery.StatusPickedUp, delivery.StatusInTransit, delivery.StatusOutForDelivery},
	}
	for _, s := range path[target] {
		require.NoError(t, d.ChangeStatus(s, time.Now()))
	}
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates pending delivery", func(t *testing.T) {
		d := newTestDelivery(t)

		assert.Equal(t, delivery.StatusPending, d.Status())
		assert.Equal(t, 1, d.Version())
		assert.Nil(t, d.ClientValidated())
		assert.Nil(t, d.ActualDeliveryDate())
		require.NoError(t, d.Validate())
	})

	t.Run("requires client id", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.UUID{}, nil, nil, mustMoney(t, 100))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires price", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), nil, nil, kernel.Money{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDeliveryChangeStatus(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		d := newTestDelivery(t)
		now := time.Now()

		for _, s := range []delivery.Status{
			delivery.StatusAssigned,
			delivery.StatusPickedUp,
			delivery.StatusInTransit,
			delivery.StatusOutForDelivery,
			delivery.StatusDelivered,
		} {
			require.NoError(t, d.ChangeStatus(s, now))
			assert.Equal(t, s, d.Status())
		}

		require.NotNil(t, d.ActualDeliveryDate())
		assert.Equal(t, now, *d.ActualDeliveryDate())
	})

	t.Run("rejects illegal transition and reports next statuses", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.ChangeStatus(delivery.StatusInTransit, time.Now())
		require.ErrorIs(t, err, errs.ErrStatusConflict)

		var conflict *errs.StatusConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "PENDING", conflict.Current)
		assert.Equal(t, []string{"ASSIGNED", "CANCELLED"}, conflict.Allowed)

		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("terminal status admits nothing", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusOutForDelivery)
		require.NoError(t, d.ChangeStatus(delivery.StatusDelivered, time.Now()))

		err := d.ChangeStatus(delivery.StatusInTransit, time.Now())
		require.ErrorIs(t, err, errs.ErrStatusConflict)

		var conflict *errs.StatusConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "DELIVERED", conflict.Current)
		assert.Empty(t, conflict.Allowed)
	})

	t.Run("rejects invalid target status", func(t *testing.T) {
		d := newTestDelivery(t)
		require.ErrorIs(t, d.ChangeStatus(delivery.StatusUnknown, time.Now()), errs.ErrValueIsInvalid)
	})

	t.Run("failed delivery can be reassigned", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusPickedUp)
		require.NoError(t, d.ChangeStatus(delivery.StatusFailed, time.Now()))
		require.NoError(t, d.ChangeStatus(delivery.StatusAssigned, time.Now()))
	})
}

func TestDeliveryAssignCourier(t *testing.T) {
	t.Run("attaches courier to unassigned delivery", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(),
			nil, nil, mustMoney(t, 5990))
		require.NoError(t, err)

		courierID := kernel.NewUUID()
		require.NoError(t, d.AssignCourier(courierID))
		require.NotNil(t, d.CourierID())
		assert.True(t, d.CourierID().IsEqual(courierID))
	})

	t.Run("re-assigning the same courier is a no-op", func(t *testing.T) {
		d := newTestDelivery(t)
		courierID := *d.CourierID()
		require.NoError(t, d.AssignCourier(courierID))
		assert.True(t, d.CourierID().IsEqual(courierID))
	})

	t.Run("rejects takeover by another courier", func(t *testing.T) {
		d := newTestDelivery(t)
		original := *d.CourierID()

		err := d.AssignCourier(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, d.CourierID().IsEqual(original))
	})

	t.Run("requires courier id", func(t *testing.T) {
		d := newTestDelivery(t)
		require.ErrorIs(t, d.AssignCourier(kernel.UUID{}), errs.ErrValueIsRequired)
	})
}

func TestDeliveryFinalize(t *testing.T) {
	rating := 5
	review := "prompt and careful"

	t.Run("acceptance delivers and records outcome", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusInTransit)
		now := time.Now()

		require.NoError(t, d.Finalize(true, &rating, &review, nil, now))

		assert.Equal(t, delivery.StatusDelivered, d.Status())
		require.NotNil(t, d.ClientValidated())
		assert.True(t, *d.ClientValidated())
		require.NotNil(t, d.ClientValidatedAt())
		assert.Equal(t, now, *d.ClientValidatedAt())
		require.NotNil(t, d.ActualDeliveryDate())
		assert.Equal(t, now, *d.ActualDeliveryDate())
		assert.Equal(t, &rating, d.ClientRating())
		assert.Equal(t, &review, d.ClientReview())
	})

	t.Run("rejection fails the delivery and keeps issues", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusInTransit)

		summary, err := delivery.NewIssueSummary("DAMAGED", "box crushed")
		require.NoError(t, err)

		require.NoError(t, d.Finalize(false, nil, nil, []delivery.IssueSummary{summary}, time.Now()))

		assert.Equal(t, delivery.StatusFailed, d.Status())
		require.NotNil(t, d.ClientValidated())
		assert.False(t, *d.ClientValidated())
		assert.Nil(t, d.ActualDeliveryDate())
		require.Len(t, d.ClientIssues(), 1)
		assert.Equal(t, "DAMAGED", d.ClientIssues()[0].Type())
	})

	t.Run("only allowed at the in-transit checkpoint", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusOutForDelivery)

		err := d.Finalize(true, nil, nil, nil, time.Now())
		require.ErrorIs(t, err, errs.ErrStatusConflict)

		var conflict *errs.StatusConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "OUT_FOR_DELIVERY", conflict.Current)
		assert.Equal(t, []string{"IN_TRANSIT"}, conflict.Allowed)
	})

	t.Run("second finalization conflicts", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusInTransit)
		require.NoError(t, d.Finalize(true, nil, nil, nil, time.Now()))

		err := d.Finalize(true, nil, nil, nil, time.Now())
		require.ErrorIs(t, err, errs.ErrStatusConflict)
	})

	t.Run("rating out of bounds", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusInTransit)

		bad := 6
		err := d.Finalize(true, &bad, nil, nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, delivery.StatusInTransit, d.Status())
	})

	t.Run("review too long", func(t *testing.T) {
		d := newTestDelivery(t)
		advanceTo(t, d, delivery.StatusInTransit)

		long := string(make([]byte, delivery.MaxClientReviewLength+1))
		err := d.Finalize(true, nil, &long, nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryCommissionAmount(t *testing.T) {
	cases := []struct {
		priceCents int64
		wantCents  int64
	}{
		{10000, 1000},
		{5990, 599},
		{105, 11},
	}

	for _, tt := range cases {
		courierID := kernel.NewUUID()
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), &courierID, nil, mustMoney(t, tt.priceCents))
		require.NoError(t, err)

		assert.Equal(t, tt.wantCents, d.CommissionAmount().Cents())
	}
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("restores persisted state verbatim", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		validated := true
		validatedAt := time.Now()

		d, err := delivery.RestoreDelivery(
			id, clientID, &courierID, nil,
			mustMoney(t, 5990),
			delivery.StatusDelivered, 4,
			&validated, &validatedAt, nil, nil, nil, &validatedAt,
		)
		require.NoError(t, err)

		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, delivery.StatusDelivered, d.Status())
		assert.Equal(t, 4, d.Version())
		require.NotNil(t, d.ClientValidated())
		assert.True(t, *d.ClientValidated())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil, nil,
			mustMoney(t, 100), delivery.StatusUnknown, 1,
			nil, nil, nil, nil, nil, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-positive version", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil, nil,
			mustMoney(t, 100), delivery.StatusPending, 0,
			nil, nil, nil, nil, nil, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestIssueSummary(t *testing.T) {
	t.Run("valid summary", func(t *testing.T) {
		s, err := delivery.NewIssueSummary("DAMAGED", "box crushed")
		require.NoError(t, err)
		assert.Equal(t, "DAMAGED", s.Type())
		assert.Equal(t, "box crushed", s.Description())
		assert.Equal(t, "DAMAGED: box crushed", s.String())
	})

	t.Run("type is required", func(t *testing.T) {
		_, err := delivery.NewIssueSummary("", "detail")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("description bounded", func(t *testing.T) {
		long := string(make([]byte, delivery.MaxIssueSummaryDescriptionLength+1))
		_, err := delivery.NewIssueSummary("DAMAGED", long)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
