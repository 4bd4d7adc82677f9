package memory

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

type ParcelRepository struct {
	uow *UnitOfWork
}

var _ ports.ParcelRepository = (*ParcelRepository)(nil)

func (r *ParcelRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	if err := aggregate.AssignID(r.uow.store.allocateParcelID()); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	snap.Version = 1
	// Identities come from the store sequence, so an insert cannot collide.
	r.uow.stage(change{
		apply: func(s *Store) {
			s.parcels[snap.ID] = snap
			s.parcelOrder = append(s.parcelOrder, snap.ID)
		},
		done: func() { aggregate.MarkPersisted(snap.Version) },
	}, aggregate)
	return nil
}

func (r *ParcelRepository) Update(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	id := aggregate.ID()
	expected := aggregate.Version()

	stored, ok := r.uow.store.parcel(id)
	if !ok {
		return errs.NewObjectNotFoundError("parcel", id)
	}
	if stored.Version != expected {
		return errs.NewConcurrentModificationError("parcel", id, expected)
	}

	snap := aggregate.Snapshot()
	snap.Version = expected + 1
	r.uow.stage(change{
		check: func(s *Store) error {
			cur, ok := s.parcels[id]
			if !ok {
				return errs.NewObjectNotFoundError("parcel", id)
			}
			if cur.Version != expected {
				return errs.NewConcurrentModificationError("parcel", id, expected)
			}
			return nil
		},
		apply: func(s *Store) { s.parcels[id] = snap },
		done:  func() { aggregate.MarkPersisted(snap.Version) },
	}, aggregate)
	return nil
}

func (r *ParcelRepository) Get(_ context.Context, id kernel.ParcelID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snap, ok := r.uow.store.parcel(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id)
	}
	return parcel.RestoreParcel(snap)
}

func (r *ParcelRepository) ListByUser(_ context.Context, userID kernel.UserID) ([]*parcel.Parcel, error) {
	s := r.uow.store
	s.mu.RLock()
	snaps := make([]parcel.Snapshot, 0)
	for _, id := range s.parcelOrder {
		if snap := s.parcels[id]; snap.UserID == userID {
			snaps = append(snaps, snap)
		}
	}
	s.mu.RUnlock()

	parcels := make([]*parcel.Parcel, 0, len(snaps))
	for _, snap := range snaps {
		p, err := parcel.RestoreParcel(snap)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *ParcelRepository) Stats(_ context.Context) (ports.ParcelStats, error) {
	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats ports.ParcelStats
	for _, snap := range s.parcels {
		stats.Total++
		if snap.Status.IsShipped() {
			stats.Revenue += snap.CodAmount
		} else if !snap.IsVoiceVerified {
			stats.AwaitingVerification++
		}
	}
	return stats, nil
}
