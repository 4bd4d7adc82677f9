package memory

import (
	"context"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

type CallRepository struct {
	uow *UnitOfWork
}

var _ ports.CallRepository = (*CallRepository)(nil)

func (r *CallRepository) Add(_ context.Context, aggregate *call.Call) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	snap.Version = 1
	r.uow.stage(change{
		check: func(s *Store) error {
			if _, ok := s.calls[snap.ID]; ok {
				return errs.NewConcurrentModificationError("call", snap.ID, 0)
			}
			if snap.Status.IsActive() && s.hasActiveCall(snap.ParcelID) {
				return errs.ErrVerificationInProgress
			}
			return nil
		},
		apply: func(s *Store) {
			s.calls[snap.ID] = snap
			s.callOrder = append(s.callOrder, snap.ID)
		},
		done: func() { aggregate.MarkPersisted(snap.Version) },
	}, nil)
	return nil
}

func (r *CallRepository) Update(_ context.Context, aggregate *call.Call) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	id := aggregate.ID()
	expected := aggregate.Version()

	stored, ok := r.uow.store.call(id)
	if !ok {
		return errs.NewObjectNotFoundError("call", id)
	}
	if stored.Version != expected {
		return errs.NewConcurrentModificationError("call", id, expected)
	}

	snap := aggregate.Snapshot()
	snap.Version = expected + 1
	r.uow.stage(change{
		check: func(s *Store) error {
			cur, ok := s.calls[id]
			if !ok {
				return errs.NewObjectNotFoundError("call", id)
			}
			if cur.Version != expected {
				return errs.NewConcurrentModificationError("call", id, expected)
			}
			return nil
		},
		apply: func(s *Store) { s.calls[id] = snap },
		done:  func() { aggregate.MarkPersisted(snap.Version) },
	}, nil)
	return nil
}

func (r *CallRepository) Get(_ context.Context, id kernel.CallID) (*call.Call, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snap, ok := r.uow.store.call(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("call", id)
	}
	return call.RestoreCall(snap)
}

func (r *CallRepository) ListActive(_ context.Context) ([]*call.Call, error) {
	s := r.uow.store
	s.mu.RLock()
	snaps := make([]call.Snapshot, 0)
	for _, id := range s.callOrder {
		if snap := s.calls[id]; snap.Status.IsActive() {
			snaps = append(snaps, snap)
		}
	}
	s.mu.RUnlock()

	calls := make([]*call.Call, 0, len(snaps))
	for _, snap := range snaps {
		c, err := call.RestoreCall(snap)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}

func (r *CallRepository) HasActive(_ context.Context, parcelID kernel.ParcelID) (bool, error) {
	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasActiveCall(parcelID), nil
}
