package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks to move a parcel to its next lifecycle status.
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.ParcelID
	target   parcel.Status

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand parses the target status name as sent on the wire.
func NewRequestTransitionCommand(parcelID kernel.ParcelID, target string) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	status, statusErr := parcel.ParseStatus(target)
	if err := errors.Join(parcelID.Validate(), statusErr); err != nil {
		return RequestTransitionCommand{}, err
	}

	cmd.parcelID = parcelID
	cmd.target = status
	return cmd, nil
}

func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

func (c RequestTransitionCommand) ParcelID() kernel.ParcelID {
	return c.parcelID
}

func (c RequestTransitionCommand) Target() parcel.Status {
	return c.target
}
