package memory

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/adapters/out/eventbus"
	"shipping/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback outside of Begin.
var ErrNoTransaction = errors.New("no active transaction")

// change is a staged write. check runs for every staged change before any
// apply, both under the store write lock; done runs after the lock is released.
type change struct {
	check func(s *Store) error
	apply func(s *Store)
	done  func()
}

type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher, logger: logger}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher, logger: f.logger}
}

// UnitOfWork stages writes until Commit. Reads always see committed state.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger

	active    bool
	changes   []change
	collector eventbus.Collector
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

// Commit applies every staged change or none of them.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}

	changes := u.changes
	u.changes = nil
	u.active = false

	if err := u.applyAll(changes); err != nil {
		u.collector.Reset()
		return err
	}

	for _, c := range changes {
		if c.done != nil {
			c.done()
		}
	}

	u.collector.Flush(ctx, u.publisher, u.logger)
	return nil
}

func (u *UnitOfWork) applyAll(changes []change) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, c := range changes {
		if c.check == nil {
			continue
		}
		if err := c.check(u.store); err != nil {
			return err
		}
	}
	for _, c := range changes {
		c.apply(u.store)
	}
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.changes = nil
	u.collector.Reset()
	return nil
}

func (u *UnitOfWork) stage(c change, aggregate any) {
	u.changes = append(u.changes, c)
	if aggregate != nil {
		u.collector.Track(aggregate)
	}
}

func (u *UnitOfWork) requireActive() error {
	if !u.active {
		return ErrNoTransaction
	}
	return nil
}

func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return &ParcelRepository{uow: u}
}

func (u *UnitOfWork) ProfileRepository() ports.ProfileRepository {
	return &ProfileRepository{uow: u}
}

func (u *UnitOfWork) CallRepository() ports.CallRepository {
	return &CallRepository{uow: u}
}

func (u *UnitOfWork) MerchantRepository() ports.MerchantRepository {
	return &MerchantRepository{uow: u}
}
