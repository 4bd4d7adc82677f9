package queries

import (
	"context"
	"errors"
	"fmt"
	"math"

	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCalculatePriceQueryIsNotConstructed = errors.New(
	"CalculatePriceQuery must be created via NewCalculatePriceQuery constructor",
)

// CalculatePriceQuery prices a hypothetical parcel for the shipping calculator.
// The weight is kept as entered; unlike a recorded parcel weight it is not
// rounded to grams.
type CalculatePriceQuery struct {
	kg float64

	guard guard.ConstructorGuard
}

func NewCalculatePriceQuery(kg float64) (CalculatePriceQuery, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return CalculatePriceQuery{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", kg))
	}
	return CalculatePriceQuery{kg: kg, guard: guard.NewConstructorGuard()}, nil
}

func (q CalculatePriceQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePriceQueryIsNotConstructed)
}

func (q CalculatePriceQuery) Kg() float64 {
	return q.kg
}

// CalculatePriceQueryHandler quotes with the same tariff that sets COD amounts,
// so a quote always matches the amount later collected for that weight.
type CalculatePriceQueryHandler struct {
	tariff services.Tariff
}

func NewCalculatePriceQueryHandler(tariff services.Tariff) CalculatePriceQueryHandler {
	return CalculatePriceQueryHandler{tariff: tariff}
}

func (h CalculatePriceQueryHandler) Handle(_ context.Context, query CalculatePriceQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}

	return h.tariff.PriceKg(query.Kg()), nil
}
