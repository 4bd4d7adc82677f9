package guard_test

import (
	"errors"
	"testing"

	"shipping/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type tariff struct {
		ratePerKg int
		guard     guard.ConstructorGuard
	}

	errTariffNotConstructed := errors.New("tariff must be created via newTariff")

	newTariff := func(rate int) (tariff, error) {
		if rate <= 0 {
			return tariff{}, errors.New("rate must be positive")
		}
		return tariff{ratePerKg: rate, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed value validates", func(t *testing.T) {
		tr, err := newTariff(15)
		require.NoError(t, err)
		require.NoError(t, tr.guard.Validate(errTariffNotConstructed))
	})

	t.Run("literal value fails validation", func(t *testing.T) {
		tr := tariff{ratePerKg: 15}
		assert.ErrorIs(t, tr.guard.Validate(errTariffNotConstructed), errTariffNotConstructed)
	})
}
