package ports

import (
	"context"

	"shipping/internal/core/domain/model/merchant"
)

// MerchantRepository serves the merchant directory.
type MerchantRepository interface {
	Add(ctx context.Context, m *merchant.Merchant) error

	// List returns the directory in insertion order.
	List(ctx context.Context) ([]*merchant.Merchant, error)

	Count(ctx context.Context) (int64, error)
}
