package queries

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel on behalf of its owner.
type GetParcelQuery struct {
	parcelID kernel.ParcelID
	userID   kernel.UserID

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(parcelID kernel.ParcelID, userID kernel.UserID) (GetParcelQuery, error) {
	if err := errors.Join(parcelID.Validate(), userID.Validate()); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{
		parcelID: parcelID,
		userID:   userID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) ParcelID() kernel.ParcelID {
	return q.parcelID
}

func (q GetParcelQuery) UserID() kernel.UserID {
	return q.userID
}

// GetParcelQueryHandler returns errs.ObjectNotFoundError for unknown parcels
// and errs.ErrUnauthorized when the caller does not own the parcel.
type GetParcelQueryHandler struct {
	readers ParcelReaderFactory
}

func NewGetParcelQueryHandler(readers ParcelReaderFactory) GetParcelQueryHandler {
	return GetParcelQueryHandler{readers: readers}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p, err := h.readers.Create().ParcelRepository().Get(ctx, query.ParcelID())
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(query.UserID()) {
		return nil, errs.ErrUnauthorized
	}

	return p, nil
}
