// Package ports defines the contracts between the application core and the
// infrastructure: repositories, the unit of work, the call provider and the
// event publisher.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// ParcelStats are the aggregates shown on the operator dashboard.
type ParcelStats struct {
	// Total is the number of parcels ever registered.
	Total int64

	// AwaitingVerification counts parcels that are not voice verified and
	// have not been shipped yet.
	AwaitingVerification int64

	// Revenue is the sum of COD amounts of shipped and delivered parcels.
	Revenue int64
}

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel and assigns its identity through AssignID.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel. The write applies only if
	// the stored version still equals aggregate.Version(); otherwise it fails
	// with errs.ConcurrentModificationError and nothing is written.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.ParcelID) (*parcel.Parcel, error)

	// ListByUser returns the parcels of userID in insertion order.
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*parcel.Parcel, error)

	// Stats computes the dashboard aggregates over all parcels.
	Stats(ctx context.Context) (ParcelStats, error)
}
