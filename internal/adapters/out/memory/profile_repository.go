package memory

import (
	"context"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

type ProfileRepository struct {
	uow *UnitOfWork
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) Add(_ context.Context, aggregate *profile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	r.uow.stage(change{
		check: func(s *Store) error {
			if _, ok := s.profiles[snap.UserID]; ok {
				return errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("profile of %s already exists", snap.UserID))
			}
			return nil
		},
		apply: func(s *Store) { s.profiles[snap.UserID] = snap },
	}, nil)
	return nil
}

func (r *ProfileRepository) Update(_ context.Context, aggregate *profile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	r.uow.stage(change{
		check: func(s *Store) error {
			if _, ok := s.profiles[snap.UserID]; !ok {
				return errs.NewObjectNotFoundError("profile", snap.UserID)
			}
			return nil
		},
		apply: func(s *Store) { s.profiles[snap.UserID] = snap },
	}, nil)
	return nil
}

func (r *ProfileRepository) Get(_ context.Context, userID kernel.UserID) (*profile.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	snap, ok := r.uow.store.profile(userID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("profile", userID)
	}
	return profile.RestoreProfile(snap)
}
