package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSubmitKycCommandIsNotConstructed = errors.New(
	"SubmitKycCommand must be created via NewSubmitKycCommand constructor",
)

// SubmitKycCommand submits the identity document of a customer.
type SubmitKycCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UserID
	aadhaarURL string

	guard guard.ConstructorGuard
}

func NewSubmitKycCommand(userID kernel.UserID, aadhaarURL string) (SubmitKycCommand, error) {
	aadhaarURL = strings.TrimSpace(aadhaarURL)

	var urlErr error
	if aadhaarURL == "" {
		urlErr = errs.NewValueIsRequiredError("aadhaarUrl")
	}
	if err := errors.Join(userID.Validate(), urlErr); err != nil {
		return SubmitKycCommand{}, err
	}

	return SubmitKycCommand{
		userID:     userID,
		aadhaarURL: aadhaarURL,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitKycCommand) Validate() error {
	return c.guard.Validate(ErrSubmitKycCommandIsNotConstructed)
}

func (c SubmitKycCommand) UserID() kernel.UserID {
	return c.userID
}

func (c SubmitKycCommand) AadhaarURL() string {
	return c.aadhaarURL
}
