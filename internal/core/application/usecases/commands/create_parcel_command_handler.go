package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler registers new parcels in Registered status.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the parcel and returns it with the identity assigned by the store.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(cmd.UserID(), cmd.TrackingNumber(), cmd.Description(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
