package queries

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists the parcels of one user in registration order.
type ListParcelsQuery struct {
	userID kernel.UserID

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(userID kernel.UserID) (ListParcelsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	return ListParcelsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) UserID() kernel.UserID {
	return q.userID
}

type ListParcelsQueryHandler struct {
	readers ParcelReaderFactory
}

func NewListParcelsQueryHandler(readers ParcelReaderFactory) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{readers: readers}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.readers.Create().ParcelRepository().ListByUser(ctx, query.UserID())
}
