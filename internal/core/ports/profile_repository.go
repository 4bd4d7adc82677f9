package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
)

// ProfileRepository stores one profile per user. Profiles are never deleted.
type ProfileRepository interface {
	// Add fails with errs.ErrValueIsInvalid when the user already has a profile.
	Add(ctx context.Context, aggregate *profile.Profile) error

	Update(ctx context.Context, aggregate *profile.Profile) error

	// Get returns errs.ObjectNotFoundError when the user has no profile yet.
	Get(ctx context.Context, userID kernel.UserID) (*profile.Profile, error)
}
