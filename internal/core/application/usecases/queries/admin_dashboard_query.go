package queries

import (
	"context"
	"errors"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/guard"
)

var ErrAdminDashboardQueryIsNotConstructed = errors.New(
	"AdminDashboardQuery must be created via NewAdminDashboardQuery constructor",
)

// AdminDashboardQuery computes the operator dashboard figures.
type AdminDashboardQuery struct {
	guard guard.ConstructorGuard
}

func NewAdminDashboardQuery() AdminDashboardQuery {
	return AdminDashboardQuery{guard: guard.NewConstructorGuard()}
}

func (q AdminDashboardQuery) Validate() error {
	return q.guard.Validate(ErrAdminDashboardQueryIsNotConstructed)
}

type AdminDashboardQueryHandler struct {
	readers ParcelReaderFactory
}

func NewAdminDashboardQueryHandler(readers ParcelReaderFactory) AdminDashboardQueryHandler {
	return AdminDashboardQueryHandler{readers: readers}
}

func (h AdminDashboardQueryHandler) Handle(ctx context.Context, query AdminDashboardQuery) (ports.ParcelStats, error) {
	if err := query.Validate(); err != nil {
		return ports.ParcelStats{}, err
	}

	return h.readers.Create().ParcelRepository().Stats(ctx)
}
