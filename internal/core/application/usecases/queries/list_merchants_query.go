package queries

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/pkg/guard"
)

var ErrListMerchantsQueryIsNotConstructed = errors.New(
	"ListMerchantsQuery must be created via NewListMerchantsQuery constructor",
)

// ListMerchantsQuery is a parameterless query over the merchant directory.
type ListMerchantsQuery struct {
	guard guard.ConstructorGuard
}

func NewListMerchantsQuery() ListMerchantsQuery {
	return ListMerchantsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListMerchantsQuery) Validate() error {
	return q.guard.Validate(ErrListMerchantsQueryIsNotConstructed)
}

type ListMerchantsQueryHandler struct {
	readers MerchantReaderFactory
}

func NewListMerchantsQueryHandler(readers MerchantReaderFactory) ListMerchantsQueryHandler {
	return ListMerchantsQueryHandler{readers: readers}
}

func (h ListMerchantsQueryHandler) Handle(ctx context.Context, query ListMerchantsQuery) ([]*merchant.Merchant, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.readers.Create().MerchantRepository().List(ctx)
}
