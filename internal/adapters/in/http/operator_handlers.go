package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ChangeParcelStatus handles PATCH /api/parcels/:id/status.
func (s *Server) ChangeParcelStatus(ctx echo.Context) error {
	id, err := parcelIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body StatusChange
	if err := s.api.bind(ctx, "StatusChange", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewRequestTransitionCommand(id, body.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.RequestTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(p))
}

// RecordParcelWeight handles POST /api/parcels/:id/weight.
func (s *Server) RecordParcelWeight(ctx echo.Context) error {
	id, err := parcelIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body WeightRecord
	if err := s.api.bind(ctx, "WeightRecord", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewRecordWeightCommand(id, body.Weight)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.RecordWeight.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(p))
}

// AttachParcelImages handles POST /api/parcels/:id/images.
func (s *Server) AttachParcelImages(ctx echo.Context) error {
	id, err := parcelIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body ImageAttachment
	if err := s.api.bind(ctx, "ImageAttachment", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAttachImagesCommand(id, body.Images)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.AttachImages.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(p))
}

// Dashboard handles GET /api/admin/dashboard.
func (s *Server) Dashboard(ctx echo.Context) error {
	stats, err := s.handlers.AdminDashboard.Handle(ctx.Request().Context(), queries.NewAdminDashboardQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDashboard(stats))
}
