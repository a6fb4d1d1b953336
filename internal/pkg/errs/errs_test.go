package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "123", cause)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 6, 1, 5)

		assert.Equal(t, "rating", err.ParamName)
		assert.Equal(t, 6, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 5, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 6 is rating, min value is 1, max value is 5", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("deliveryId")

		assert.Equal(t, "deliveryId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: deliveryId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("deliveryId", cause)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: deliveryId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestNotAuthorizedError(t *testing.T) {
	err := errs.NewNotAuthorizedError("CLIENT", "update delivery status")

	assert.Equal(t, "CLIENT", err.Role)
	assert.Equal(t, "update delivery status", err.Action)
	assert.Equal(t, "actor is not authorized: CLIENT cannot update delivery status", err.Error())
	assert.Equal(t, errs.ErrNotAuthorized, err.Unwrap())
}

func TestStatusConflictError(t *testing.T) {
	t.Run("terminal status has empty allowed set", func(t *testing.T) {
		err := errs.NewStatusConflictError("DELIVERED", []string{})

		assert.Equal(t, "DELIVERED", err.Current)
		assert.Empty(t, err.Allowed)
		assert.Equal(t, "status conflict: current status is DELIVERED, allowed statuses are []", err.Error())
		assert.Equal(t, errs.ErrStatusConflict, err.Unwrap())
	})

	t.Run("lists allowed statuses", func(t *testing.T) {
		err := errs.NewStatusConflictError("PICKED_UP", []string{"IN_TRANSIT", "FAILED"})

		assert.Equal(t,
			"status conflict: current status is PICKED_UP, allowed statuses are [IN_TRANSIT, FAILED]",
			err.Error())
	})
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("delivery", "123")

	assert.Equal(t, "delivery", err.ParamName)
	assert.Equal(t, "123", err.ID)
	assert.Equal(t, "version conflict: delivery 123 was modified concurrently", err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrNotAuthorized)
		require.Error(t, errs.ErrStatusConflict)
		require.Error(t, errs.ErrVersionConflict)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "actor is not authorized", errs.ErrNotAuthorized.Error())
		assert.Equal(t, "status conflict", errs.ErrStatusConflict.Error())
		assert.Equal(t, "version conflict", errs.ErrVersionConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("deliveryId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("status")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("rating", 6, 1, 5)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("deliveryId")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		notAuthorizedErr := errs.NewNotAuthorizedError("COURIER", "validate delivery")
		require.ErrorIs(t, notAuthorizedErr, errs.ErrNotAuthorized)

		statusConflictErr := errs.NewStatusConflictError("DELIVERED", nil)
		require.ErrorIs(t, statusConflictErr, errs.ErrStatusConflict)

		versionConflictErr := errs.NewVersionConflictError("delivery", "123")
		require.ErrorIs(t, versionConflictErr, errs.ErrVersionConflict)
	})
}
