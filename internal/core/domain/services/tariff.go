package services

import (
	"fmt"
	"math"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"
)

const (
	// DefaultRatePerKg is the freight rate in USD per kilogram.
	DefaultRatePerKg = 15.0

	// DefaultFXRate converts USD to INR.
	DefaultFXRate = 83.0
)

// Quote is the price breakdown in whole rupees. Customs and commission are
// carried for the breakdown shown to customers and are zero under the
// current tariff.
type Quote struct {
	Freight    int64 `json:"freight"`
	Customs    int64 `json:"customs"`
	Commission int64 `json:"commission"`
	Total      int64 `json:"total"`
}

// Tariff is the pricing function of the warehouse: a flat freight rate per
// kilogram converted to rupees. It is pure and deterministic, so the same
// weight always produces the same COD amount.
//
// Example:
//
//	tariff := services.DefaultTariff()
//	w, _ := kernel.NewWeight(5)
//	tariff.Price(w) // {Freight: 6225, Customs: 0, Commission: 0, Total: 6225}
type Tariff struct {
	ratePerKg float64
	fxRate    float64
}

var _ parcel.CodEstimator = Tariff{}

// NewTariff validates the rates. Both must be positive for the COD amount to
// grow with the weight.
func NewTariff(ratePerKg, fxRate float64) (Tariff, error) {
	if math.IsNaN(ratePerKg) || ratePerKg <= 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("ratePerKg", fmt.Errorf("%v is not greater than 0", ratePerKg))
	}
	if math.IsNaN(fxRate) || fxRate <= 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("fxRate", fmt.Errorf("%v is not greater than 0", fxRate))
	}
	return Tariff{ratePerKg: ratePerKg, fxRate: fxRate}, nil
}

// DefaultTariff returns the 15 USD/kg at 83 INR/USD tariff.
func DefaultTariff() Tariff {
	return Tariff{ratePerKg: DefaultRatePerKg, fxRate: DefaultFXRate}
}

func (t Tariff) RatePerKg() float64 {
	return t.ratePerKg
}

func (t Tariff) FXRate() float64 {
	return t.fxRate
}

// Price returns the breakdown for a parcel of the given weight.
func (t Tariff) Price(weight kernel.Weight) Quote {
	return t.PriceKg(weight.Kg())
}

// PriceKg prices an unrounded weight in kilograms. Only the total is rounded,
// so the calculator quotes any positive weight the customer types in.
func (t Tariff) PriceKg(kg float64) Quote {
	freight := int64(math.Round(kg * t.ratePerKg * t.fxRate))
	return Quote{
		Freight:    freight,
		Customs:    0,
		Commission: 0,
		Total:      freight,
	}
}

// CodAmount is the amount collected on delivery, which is the quote total.
func (t Tariff) CodAmount(weight kernel.Weight) int64 {
	return t.Price(weight).Total
}
