package ports

import (
	"context"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
)

// CallRepository keeps the record of every verification call attempt.
type CallRepository interface {
	Add(ctx context.Context, aggregate *call.Call) error

	// Update follows the same optimistic versioning as ParcelRepository.Update.
	Update(ctx context.Context, aggregate *call.Call) error

	Get(ctx context.Context, id kernel.CallID) (*call.Call, error)

	// ListActive returns the attempts still dialing or connected, oldest first.
	ListActive(ctx context.Context) ([]*call.Call, error)

	// HasActive reports whether parcelID has an attempt dialing or connected.
	HasActive(ctx context.Context, parcelID kernel.ParcelID) (bool, error)
}
