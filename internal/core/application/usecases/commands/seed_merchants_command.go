package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSeedMerchantsCommandIsNotConstructed = errors.New(
	"SeedMerchantsCommand must be created via NewSeedMerchantsCommand constructor",
)

// SeedMerchantsCommand fills an empty merchant directory.
type SeedMerchantsCommand struct { //nolint:recvcheck //using for validation
	merchants []*merchant.Merchant

	guard guard.ConstructorGuard
}

func NewSeedMerchantsCommand(merchants []*merchant.Merchant) (SeedMerchantsCommand, error) {
	if len(merchants) == 0 {
		return SeedMerchantsCommand{}, errs.NewValueIsRequiredError("merchants")
	}
	return SeedMerchantsCommand{
		merchants: merchants,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SeedMerchantsCommand) Validate() error {
	return c.guard.Validate(ErrSeedMerchantsCommandIsNotConstructed)
}

func (c SeedMerchantsCommand) Merchants() []*merchant.Merchant {
	return c.merchants
}

// SeedMerchantsCommandHandler inserts the seed only when the directory is empty,
// so restarting the service never duplicates entries.
type SeedMerchantsCommandHandler struct {
	uowFactory MerchantUoWFactory
}

func NewSeedMerchantsCommandHandler(uowFactory MerchantUoWFactory) SeedMerchantsCommandHandler {
	return SeedMerchantsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of inserted entries.
func (h SeedMerchantsCommandHandler) Handle(ctx context.Context, cmd SeedMerchantsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MerchantRepository()
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, m := range cmd.Merchants() {
		if err = repo.Add(ctx, m); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(cmd.Merchants()), nil
}
