package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/parcel"
)

// RecordWeightCommandHandler records a measured weight and derives the COD
// amount through the configured estimator.
//
// Example:
//
//	handler := NewRecordWeightCommandHandler(uowFactory, services.DefaultTariff())
//	cmd, _ := NewRecordWeightCommand(id, 5)
//	p, err := handler.Handle(ctx, cmd)
//	// p.CodAmount() == 6225, p.Status() == parcel.Weighing
type RecordWeightCommandHandler struct {
	uowFactory ParcelUoWFactory
	estimator  parcel.CodEstimator
}

func NewRecordWeightCommandHandler(uowFactory ParcelUoWFactory, estimator parcel.CodEstimator) RecordWeightCommandHandler {
	return RecordWeightCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
	}
}

func (h RecordWeightCommandHandler) Handle(ctx context.Context, cmd RecordWeightCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateParcel(ctx, h.uowFactory, cmd.ParcelID(), func(p *parcel.Parcel) error {
		return p.RecordWeight(cmd.Weight(), h.estimator, time.Now().UTC())
	})
}
