package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// GetProfile handles GET /api/profile - the profile is created on first access.
func (s *Server) GetProfile(ctx echo.Context) error {
	cmd, err := commands.NewEnsureProfileCommand(principalFrom(ctx).UserID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.EnsureProfile.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProfile(p))
}

// UpdateProfile handles PATCH /api/profile.
func (s *Server) UpdateProfile(ctx echo.Context) error {
	var body ProfileUpdate
	if err := s.api.bind(ctx, "ProfileUpdate", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateProfileCommand(principalFrom(ctx).UserID, body.PhoneNumber, body.IndianAddress)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.UpdateProfile.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProfile(p))
}

// SubmitKyc handles POST /api/profile/kyc.
func (s *Server) SubmitKyc(ctx echo.Context) error {
	var body KycSubmission
	if err := s.api.bind(ctx, "KycSubmission", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewSubmitKycCommand(principalFrom(ctx).UserID, body.AadhaarURL)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.SubmitKyc.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProfile(p))
}
