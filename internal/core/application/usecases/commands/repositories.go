// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ProfileRepoFactory provides access to the profile repository within a transaction.
	ProfileRepoFactory interface {
		ProfileRepository() ports.ProfileRepository
	}

	// CallRepoFactory provides access to the call record repository within a transaction.
	CallRepoFactory interface {
		CallRepository() ports.CallRepository
	}

	// MerchantRepoFactory provides access to the merchant directory within a transaction.
	MerchantRepoFactory interface {
		MerchantRepository() ports.MerchantRepository
	}

	// ParcelUoW manages transactions for parcel-only operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// ProfileUoW manages transactions for profile operations.
	ProfileUoW interface {
		TxManager
		ProfileRepoFactory
	}

	// ProfileUoWFactory creates new profile unit of work instances.
	ProfileUoWFactory interface {
		Create() ProfileUoW
	}

	// CallUoW manages transactions for call record maintenance.
	CallUoW interface {
		TxManager
		CallRepoFactory
	}

	// CallUoWFactory creates new call unit of work instances.
	CallUoWFactory interface {
		Create() CallUoW
	}

	// MerchantUoW manages transactions for the merchant directory.
	MerchantUoW interface {
		TxManager
		MerchantRepoFactory
	}

	// MerchantUoWFactory creates new merchant unit of work instances.
	MerchantUoWFactory interface {
		Create() MerchantUoW
	}
)
