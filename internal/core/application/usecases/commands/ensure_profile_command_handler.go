package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// EnsureProfileCommandHandler lazily creates profiles.
type EnsureProfileCommandHandler struct {
	uowFactory ProfileUoWFactory
}

func NewEnsureProfileCommandHandler(uowFactory ProfileUoWFactory) EnsureProfileCommandHandler {
	return EnsureProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h EnsureProfileCommandHandler) Handle(ctx context.Context, cmd EnsureProfileCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeProfile(ctx, h.uowFactory, cmd.UserID(), nil)
}

// changeProfile loads the profile of userID, creating it when missing, applies
// change when given and saves the result in one transaction.
func changeProfile(
	ctx context.Context,
	uowFactory ProfileUoWFactory,
	userID kernel.UserID,
	change func(p *profile.Profile) error,
) (*profile.Profile, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProfileRepository()
	p, created, err := loadOrCreateProfile(ctx, repo, userID)
	if err != nil {
		return nil, err
	}

	if change == nil && !created {
		return p, nil
	}

	if change != nil {
		if err = change(p); err != nil {
			return nil, err
		}
	}

	if created {
		err = repo.Add(ctx, p)
	} else {
		err = repo.Update(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

func loadOrCreateProfile(
	ctx context.Context,
	repo ports.ProfileRepository,
	userID kernel.UserID,
) (*profile.Profile, bool, error) {
	p, err := repo.Get(ctx, userID)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	p, err = profile.NewProfile(userID, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}
