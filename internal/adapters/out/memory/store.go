// Package memory provides an in-process implementation of the persistence
// ports. It is selected when no database is configured and backs the
// application tests.
//
// A Store is an explicit object owned by the composition root; nothing is
// kept in package variables. Writes are staged by a UnitOfWork and applied
// atomically on Commit under the store lock, with the same optimistic
// version checks as the PostgreSQL repositories.
package memory

import (
	"slices"
	"sync"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/profile"
)

type merchantRow struct {
	id          int64
	name        string
	category    string
	url         string
	imageURL    string
	description string
}

// Store holds committed state.
type Store struct {
	mu sync.RWMutex

	parcels      map[kernel.ParcelID]parcel.Snapshot
	parcelOrder  []kernel.ParcelID
	nextParcelID int64

	profiles map[kernel.UserID]profile.Snapshot

	calls     map[kernel.CallID]call.Snapshot
	callOrder []kernel.CallID

	merchants      []merchantRow
	nextMerchantID int64
}

func NewStore() *Store {
	return &Store{
		parcels:  make(map[kernel.ParcelID]parcel.Snapshot),
		profiles: make(map[kernel.UserID]profile.Snapshot),
		calls:    make(map[kernel.CallID]call.Snapshot),
	}
}

func (s *Store) allocateParcelID() kernel.ParcelID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextParcelID++
	return kernel.ParcelID(s.nextParcelID)
}

func (s *Store) allocateMerchantID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMerchantID++
	return s.nextMerchantID
}

func (s *Store) parcel(id kernel.ParcelID) (parcel.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.parcels[id]
	if ok {
		snap.Images = slices.Clone(snap.Images)
	}
	return snap, ok
}

func (s *Store) call(id kernel.CallID) (call.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.calls[id]
	return snap, ok
}

func (s *Store) profile(userID kernel.UserID) (profile.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.profiles[userID]
	return snap, ok
}

// hasActiveCall expects s.mu to be held.
func (s *Store) hasActiveCall(parcelID kernel.ParcelID) bool {
	for _, snap := range s.calls {
		if snap.ParcelID == parcelID && snap.Status.IsActive() {
			return true
		}
	}
	return false
}
