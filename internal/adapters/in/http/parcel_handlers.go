package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const verifiedMessage = "Voice verification completed successfully."

// ListParcels handles GET /api/parcels - parcels of the caller.
func (s *Server) ListParcels(ctx echo.Context) error {
	query, err := queries.NewListParcelsQuery(principalFrom(ctx).UserID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	parcels, err := s.handlers.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcels(parcels))
}

// CreateParcel handles POST /api/parcels - registers a new parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := s.api.bind(ctx, "NewParcel", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(principalFrom(ctx).UserID, body.TrackingNumber, body.Description)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toParcel(p))
}

// GetParcel handles GET /api/parcels/:id.
func (s *Server) GetParcel(ctx echo.Context) error {
	id, err := parcelIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(id, principalFrom(ctx).UserID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	p, err := s.handlers.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(p))
}

// VerifyVoice handles POST /api/parcels/:id/verify-voice. The response is
// written once the call finished; a declined call is a 200 with success=false.
func (s *Server) VerifyVoice(ctx echo.Context) error {
	id, err := parcelIDParam(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewInitiateVerificationCommand(id, principalFrom(ctx).UserID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	outcome, err := s.handlers.InitiateVerification.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result := VerificationResult{
		Success: outcome.Verified,
		Message: verifiedMessage,
		CallID:  outcome.CallID.String(),
	}
	if !outcome.Verified {
		result.Message = "Voice verification failed: " + outcome.Reason
	}

	return ctx.JSON(http.StatusOK, result)
}

// CalculatePrice handles POST /api/calculate.
func (s *Server) CalculatePrice(ctx echo.Context) error {
	var body PriceRequest
	if err := s.api.bind(ctx, "PriceRequest", &body); err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewCalculatePriceQuery(body.Weight)
	if err != nil {
		return s.respondError(ctx, err)
	}

	quote, err := s.handlers.CalculatePrice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

// ListStores handles GET /api/stores.
func (s *Server) ListStores(ctx echo.Context) error {
	merchants, err := s.handlers.ListMerchants.Handle(ctx.Request().Context(), queries.NewListMerchantsQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStores(merchants))
}
