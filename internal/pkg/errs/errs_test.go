package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcel", 123)

		assert.Equal(t, "parcel", err.ParamName)
		assert.Equal(t, 123, err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: parcel 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("profile", "demo-001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: profile demo-001 (cause: database connection failed)",
			err.Error())
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
		cause := errors.New("not a url")
		err := errs.NewValueIsInvalidErrorWithCause("aadhaarUrl", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: aadhaarUrl (cause: not a url)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("trustScore", 150, 0, 100)

		assert.Equal(t, "trustScore", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is out of range: trustScore is 150, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("trustScore", -5, 0, 100, cause)

		assert.Equal(t,
			"value is out of range: trustScore is -5, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitizes newlines in values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("trackingNumber")

	assert.Equal(t, "trackingNumber", err.ParamName)
	assert.Equal(t, "value is required: trackingNumber", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("weight", errors.New("not recorded"))
	assert.Equal(t, "value is required: weight (cause: not recorded)", withCause.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("registered", "shipped")

	assert.Equal(t, "registered", err.From)
	assert.Equal(t, "shipped", err.To)
	assert.Equal(t, "invalid transition: registered -> shipped", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	withCause := errs.NewInvalidTransitionErrorWithCause("shipped", "verified", errors.New("parcel already left"))
	assert.Equal(t, "invalid transition: shipped -> verified (cause: parcel already left)", withCause.Error())
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("parcel", 7, 3)

	assert.Equal(t, "concurrent modification: parcel 7 changed after version 3", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"required", errs.NewValueIsRequiredError("x"), true},
		{"invalid", errs.NewValueIsInvalidError("x"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 1, 2, 3), true},
		{"joined", errors.Join(errors.New("other"), errs.NewValueIsRequiredError("x")), true},
		{"wrapped", fmt.Errorf("create parcel: %w", errs.NewValueIsInvalidError("x")), true},
		{"not found", errs.NewObjectNotFoundError("parcel", 1), false},
		{"transition", errs.NewInvalidTransitionError("a", "b"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.IsValidation(tc.err))
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "voice verification required", errs.ErrVerificationRequired.Error())
	assert.Equal(t, "voice verification in progress", errs.ErrVerificationInProgress.Error())
}
