package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrRecordWeightCommandIsNotConstructed = errors.New(
	"RecordWeightCommand must be created via NewRecordWeightCommand constructor",
)

// RecordWeightCommand stores the weight measured by a warehouse operator.
type RecordWeightCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.ParcelID
	weight   kernel.Weight

	guard guard.ConstructorGuard
}

// NewRecordWeightCommand validates the parcel id and converts kg into a Weight.
func NewRecordWeightCommand(parcelID kernel.ParcelID, kg float64) (RecordWeightCommand, error) {
	cmd := RecordWeightCommand{
		guard: guard.NewConstructorGuard(),
	}

	weight, weightErr := kernel.NewWeight(kg)
	if err := errors.Join(parcelID.Validate(), weightErr); err != nil {
		return RecordWeightCommand{}, err
	}

	cmd.parcelID = parcelID
	cmd.weight = weight
	return cmd, nil
}

func (c RecordWeightCommand) Validate() error {
	return c.guard.Validate(ErrRecordWeightCommandIsNotConstructed)
}

func (c RecordWeightCommand) ParcelID() kernel.ParcelID {
	return c.parcelID
}

func (c RecordWeightCommand) Weight() kernel.Weight {
	return c.weight
}
