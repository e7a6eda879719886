package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

func zeroBreakdown(categories []entity.Category) entity.Breakdown {
	b := make(entity.Breakdown, len(categories))
	for _, c := range categories {
		b[c] = decimal.Zero
	}
	return b
}

func roundBreakdown(b entity.Breakdown) entity.Breakdown {
	out := make(entity.Breakdown, len(b))
	for k, v := range b {
		out[k] = v.Round(2)
	}
	return out
}

// Calculate agrega precio TTC y costo HT por categoría y deriva el beneficio.
//
//	TotalPriceIncl = Σ desglose de precio
//	TotalCostExcl  = Σ desglose de costo (incluye rounding_adjustment)
//	ProfitExcl     = TotalPriceIncl / 1.2 − TotalCostExcl
//
// Los acumulados no se redondean; el redondeo a 2 decimales se aplica al devolver.
// Solo falla con domain.ErrInvalidConfiguration (cantidades negativas o dimensiones no positivas).
func (e *Engine) Calculate(cfg entity.Configuration) (entity.Quote, error) {
	if err := cfg.Validate(); err != nil {
		return entity.Quote{}, err
	}

	price := zeroBreakdown(entity.PriceCategories)
	cost := zeroBreakdown(entity.CostCategories)

	for _, s := range cfg.SeatingSections {
		price[entity.CategorySeatingFoamFabric] = price[entity.CategorySeatingFoamFabric].Add(e.sectionUnitPrice(s))
		price[entity.CategorySeatingSupports] = price[entity.CategorySeatingSupports].Add(e.SupportPrice(seatSupportKind(s.IsCorner)))

		cost[entity.CategorySeatingFoamFabric] = cost[entity.CategorySeatingFoamFabric].Add(
			e.FoamFabricCost(s.LengthCM, s.WidthCM, s.ThicknessCM, s.FoamGrade))
		cost[entity.CategorySeatingSupports] = cost[entity.CategorySeatingSupports].Add(
			e.SeatingSupportCost(s.LengthCM, s.IsCorner))
	}

	for _, b := range cfg.Backrests {
		price[entity.CategoryBackrests] = price[entity.CategoryBackrests].Add(e.SupportPrice(SupportBackrest))
		cost[entity.CategoryBackrests] = cost[entity.CategoryBackrests].Add(e.BackrestCost(b.LengthCM))
	}

	armrests := decimal.NewFromInt(int64(cfg.Armrests.Count()))
	price[entity.CategoryArmrests] = armrests.Mul(e.SupportPrice(SupportArmrest))
	cost[entity.CategoryArmrests] = armrests.Mul(e.ArmrestCost())

	for kind, qty := range cfg.Cushions {
		q := decimal.NewFromInt(int64(qty))
		price[entity.CategoryCushions] = price[entity.CategoryCushions].Add(e.CushionPrice(kind).Mul(q))
		cost[entity.CategoryCushions] = cost[entity.CategoryCushions].Add(e.CushionCost(kind).Mul(q))
	}

	for kind, qty := range cfg.Accessories {
		q := decimal.NewFromInt(int64(qty))
		price[entity.CategoryAccessories] = price[entity.CategoryAccessories].Add(e.AccessoryPrice(kind).Mul(q))
		cost[entity.CategoryAccessories] = cost[entity.CategoryAccessories].Add(e.AccessoryCost(kind).Mul(q))
	}

	cost[entity.CategoryRoundingAdjustment] = e.RoundingAdjustment()

	q := entity.Quote{
		TotalPriceIncl: price.Total().Round(2),
		TotalCostExcl:  cost.Total().Round(2),
		PriceBreakdown: roundBreakdown(price),
		CostBreakdown:  roundBreakdown(cost),
	}
	priceExcl := q.TotalPriceIncl.Div(e.cat.TaxDivisor)
	q.ProfitExcl = priceExcl.Sub(q.TotalCostExcl).Round(2)
	q.ProfitRatio = decimal.Zero
	if !priceExcl.IsZero() {
		q.ProfitRatio = q.ProfitExcl.Div(priceExcl).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return q, nil
}

// PriceExcl convierte un importe TTC a su equivalente HT con el divisor fijo del catálogo.
func (e *Engine) PriceExcl(priceIncl decimal.Decimal) decimal.Decimal {
	return priceIncl.Div(e.cat.TaxDivisor)
}
