package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the domain
	// events recorded by the tracked aggregates. A publishing failure is
	// logged and does not undo the commit.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops tracked events.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	ProfileRepository() ProfileRepository
	CallRepository() CallRepository
	MerchantRepository() MerchantRepository
}
