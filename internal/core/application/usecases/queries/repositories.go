// Package queries contains read operations of the CQRS architecture. Queries
// never open a transaction and never modify state.
package queries

import (
	"shipping/internal/core/ports"
)

type (
	// ParcelReader gives access to parcels outside of a transaction.
	ParcelReader interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ParcelReaderFactory creates readers per query.
	ParcelReaderFactory interface {
		Create() ParcelReader
	}

	// MerchantReader gives access to the merchant directory.
	MerchantReader interface {
		MerchantRepository() ports.MerchantRepository
	}

	// MerchantReaderFactory creates readers per query.
	MerchantReaderFactory interface {
		Create() MerchantReader
	}
)
