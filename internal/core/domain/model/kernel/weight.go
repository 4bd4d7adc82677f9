package kernel

import (
	"fmt"
	"math"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	// MinWeightKg is the smallest weight a scale reports (one gram rounds to zero).
	MinWeightKg = 0.01
	// MaxWeightKg matches the numeric(10,2) column that stores weights.
	MaxWeightKg = 99999999.99
)

// ErrWeightIsNotConstructed is returned when a zero Weight is used.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("weight must be created via NewWeight")

// Weight is the measured weight of a parcel in kilograms, kept to two decimals.
//
// Example:
//
//	w, err := kernel.NewWeight(2.345)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(w) // 2.35 kg
type Weight struct { //nolint:recvcheck //using for validation
	kg    float64
	guard guard.ConstructorGuard
}

// NewWeight rounds kg to two decimals and requires the result to be positive.
func NewWeight(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a number", kg))
	}

	rounded := math.Round(kg*100) / 100
	if rounded < MinWeightKg || rounded > MaxWeightKg {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", kg, MinWeightKg, MaxWeightKg)
	}

	return Weight{kg: rounded, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the weight was created through NewWeight.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return w.kg
}

// IsEqual compares two weights to the gram.
func (w Weight) IsEqual(other Weight) bool {
	return math.Round(w.kg*100) == math.Round(other.kg*100)
}

func (w Weight) String() string {
	return fmt.Sprintf("%.2f kg", w.kg)
}
