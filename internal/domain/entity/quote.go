package entity

import "github.com/shopspring/decimal"

// Category agrupa importes del desglose de precio y costo.
type Category string

const (
	CategorySeatingFoamFabric  Category = "seating_foam_fabric"
	CategorySeatingSupports    Category = "seating_supports"
	CategoryBackrests          Category = "backrests"
	CategoryArmrests           Category = "armrests"
	CategoryCushions           Category = "cushions"
	CategoryAccessories        Category = "accessories"
	CategoryRoundingAdjustment Category = "rounding_adjustment" // solo costo
)

// PriceCategories categorías del desglose de precio, en orden de presentación.
var PriceCategories = []Category{
	CategorySeatingFoamFabric,
	CategorySeatingSupports,
	CategoryBackrests,
	CategoryArmrests,
	CategoryCushions,
	CategoryAccessories,
}

// CostCategories categorías del desglose de costo (incluye el ajuste de redondeo).
var CostCategories = append(append([]Category{}, PriceCategories...), CategoryRoundingAdjustment)

// Breakdown importe por categoría.
type Breakdown map[Category]decimal.Decimal

// Total suma de todas las categorías.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Shares porcentaje de cada categoría sobre total (1 decimal). Con total cero todo vale 0.
func (b Breakdown) Shares(total decimal.Decimal) map[Category]decimal.Decimal {
	out := make(map[Category]decimal.Decimal, len(b))
	for k, v := range b {
		if total.IsZero() {
			out[k] = decimal.Zero
			continue
		}
		out[k] = v.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return out
}

// Quote resultado de la cotización: precio de venta (TTC), costo de fabricación (HT) y beneficio (HT).
// Todos los importes vienen redondeados a 2 decimales.
type Quote struct {
	TotalPriceIncl decimal.Decimal
	TotalCostExcl  decimal.Decimal
	ProfitExcl     decimal.Decimal
	ProfitRatio    decimal.Decimal // % del beneficio sobre el precio HT equivalente (1 decimal)
	PriceBreakdown Breakdown
	CostBreakdown  Breakdown
}

// QuoteLine línea del detalle imprimible. LineTotalIncl = Quantity × UnitPriceIncl.
type QuoteLine struct {
	Label         string
	Quantity      int
	UnitPriceIncl decimal.Decimal
	LineTotalIncl decimal.Decimal
}

// LinesTotal suma los totales de las líneas.
func LinesTotal(lines []QuoteLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotalIncl)
	}
	return total
}
