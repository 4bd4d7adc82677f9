package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/parcel"
)

// RequestTransitionCommandHandler advances a parcel one status forward.
// Rejections come from the aggregate: errs.InvalidTransitionError for any
// status other than the next one and errs.ErrVerificationRequired when an
// unverified parcel is approved for shipping.
type RequestTransitionCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewRequestTransitionCommandHandler(uowFactory ParcelUoWFactory) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateParcel(ctx, h.uowFactory, cmd.ParcelID(), func(p *parcel.Parcel) error {
		return p.Transition(cmd.Target(), time.Now().UTC())
	})
}
