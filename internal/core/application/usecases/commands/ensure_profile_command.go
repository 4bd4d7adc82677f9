package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrEnsureProfileCommandIsNotConstructed = errors.New(
	"EnsureProfileCommand must be created via NewEnsureProfileCommand constructor",
)

// EnsureProfileCommand returns the profile of a user, creating the default
// one on first access.
type EnsureProfileCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID

	guard guard.ConstructorGuard
}

func NewEnsureProfileCommand(userID kernel.UserID) (EnsureProfileCommand, error) {
	if err := userID.Validate(); err != nil {
		return EnsureProfileCommand{}, err
	}

	return EnsureProfileCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c EnsureProfileCommand) Validate() error {
	return c.guard.Validate(ErrEnsureProfileCommandIsNotConstructed)
}

func (c EnsureProfileCommand) UserID() kernel.UserID {
	return c.userID
}
