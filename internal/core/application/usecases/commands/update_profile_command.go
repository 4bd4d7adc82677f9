package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// UpdateProfileCommand changes contact details. Nil fields are left untouched.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	userID  kernel.UserID
	contact profile.Contact

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(userID kernel.UserID, phoneNumber, indianAddress *string) (UpdateProfileCommand, error) {
	var contactErr error
	if phoneNumber == nil && indianAddress == nil {
		contactErr = errs.NewValueIsRequiredErrorWithCause("profile", errors.New("nothing to update"))
	}
	if err := errors.Join(userID.Validate(), contactErr); err != nil {
		return UpdateProfileCommand{}, err
	}

	return UpdateProfileCommand{
		userID:  userID,
		contact: profile.Contact{PhoneNumber: phoneNumber, IndianAddress: indianAddress},
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) UserID() kernel.UserID {
	return c.userID
}

func (c UpdateProfileCommand) Contact() profile.Contact {
	return c.contact
}
