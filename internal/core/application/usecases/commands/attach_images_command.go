package commands

import (
	"errors"
	"slices"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// MaxImagesPerRequest bounds one upload batch.
const MaxImagesPerRequest = 20

var ErrAttachImagesCommandIsNotConstructed = errors.New(
	"AttachImagesCommand must be created via NewAttachImagesCommand constructor",
)

// AttachImagesCommand adds inspection photo URLs to a parcel.
type AttachImagesCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.ParcelID
	urls     []string

	guard guard.ConstructorGuard
}

func NewAttachImagesCommand(parcelID kernel.ParcelID, urls []string) (AttachImagesCommand, error) {
	cmd := AttachImagesCommand{
		guard: guard.NewConstructorGuard(),
	}

	var urlsErr error
	switch {
	case len(urls) == 0:
		urlsErr = errs.NewValueIsRequiredError("images")
	case len(urls) > MaxImagesPerRequest:
		urlsErr = errs.NewValueIsOutOfRangeError("images", len(urls), 1, MaxImagesPerRequest)
	}
	if err := errors.Join(parcelID.Validate(), urlsErr); err != nil {
		return AttachImagesCommand{}, err
	}

	cmd.parcelID = parcelID
	cmd.urls = slices.Clone(urls)
	return cmd, nil
}

func (c AttachImagesCommand) Validate() error {
	return c.guard.Validate(ErrAttachImagesCommandIsNotConstructed)
}

func (c AttachImagesCommand) ParcelID() kernel.ParcelID {
	return c.parcelID
}

func (c AttachImagesCommand) URLs() []string {
	return slices.Clone(c.urls)
}
