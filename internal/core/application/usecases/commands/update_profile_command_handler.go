package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/profile"
)

type UpdateProfileCommandHandler struct {
	uowFactory ProfileUoWFactory
}

func NewUpdateProfileCommandHandler(uowFactory ProfileUoWFactory) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeProfile(ctx, h.uowFactory, cmd.UserID(), func(p *profile.Profile) error {
		return p.UpdateContact(cmd.Contact(), time.Now().UTC())
	})
}
