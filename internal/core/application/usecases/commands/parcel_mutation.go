package commands

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// mutateParcel loads a parcel, applies change and saves it in one transaction.
// When change fails nothing is written.
func mutateParcel(
	ctx context.Context,
	uowFactory ParcelUoWFactory,
	id kernel.ParcelID,
	change func(p *parcel.Parcel) error,
) (*parcel.Parcel, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = change(p); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
