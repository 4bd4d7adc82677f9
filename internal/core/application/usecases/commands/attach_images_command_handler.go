package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/parcel"
)

// AttachImagesCommandHandler appends inspection photos while a parcel is
// being weighed or checked.
type AttachImagesCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewAttachImagesCommandHandler(uowFactory ParcelUoWFactory) AttachImagesCommandHandler {
	return AttachImagesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AttachImagesCommandHandler) Handle(ctx context.Context, cmd AttachImagesCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateParcel(ctx, h.uowFactory, cmd.ParcelID(), func(p *parcel.Parcel) error {
		return p.AttachImages(cmd.URLs(), time.Now().UTC())
	})
}
