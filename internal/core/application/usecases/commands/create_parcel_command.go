package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// MaxDescriptionLength bounds the free-text parcel description.
const MaxDescriptionLength = 500

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand registers a parcel the customer expects at the warehouse.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand("demo-001", "SF123", "winter jackets")
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	p, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UserID
	trackingNumber string
	description    string

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(userID kernel.UserID, trackingNumber, description string) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setDescription(description),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) UserID() kernel.UserID {
	return c.userID
}

func (c CreateParcelCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c CreateParcelCommand) Description() string {
	return c.description
}

func (c *CreateParcelCommand) setUserID(userID kernel.UserID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateParcelCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *CreateParcelCommand) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if len(description) > MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description", len(description), 0, MaxDescriptionLength)
	}
	c.description = description
	return nil
}
