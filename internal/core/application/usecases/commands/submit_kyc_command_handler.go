package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/profile"
)

// SubmitKycCommandHandler accepts a KYC document. Review is simulated and the
// profile is marked verified immediately.
type SubmitKycCommandHandler struct {
	uowFactory ProfileUoWFactory
}

func NewSubmitKycCommandHandler(uowFactory ProfileUoWFactory) SubmitKycCommandHandler {
	return SubmitKycCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SubmitKycCommandHandler) Handle(ctx context.Context, cmd SubmitKycCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return changeProfile(ctx, h.uowFactory, cmd.UserID(), func(p *profile.Profile) error {
		return p.SubmitKyc(cmd.AadhaarURL(), time.Now().UTC())
	})
}
