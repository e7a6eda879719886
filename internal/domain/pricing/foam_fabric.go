package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

// volumeM3 = L×W×T / 1 000 000 (cm³ → m³), exacto.
func volumeM3(lengthCM, widthCM, thicknessCM int) decimal.Decimal {
	return decimal.New(int64(lengthCM)*int64(widthCM)*int64(thicknessCM), -6)
}

// linearMeters = L / 100.
func linearMeters(lengthCM int) decimal.Decimal {
	return decimal.New(int64(lengthCM), -2)
}

// foamCoef coeficiente del grado; si no existe se usa el de FoamD25.
func foamCoef(table map[entity.FoamGrade]decimal.Decimal, grade entity.FoamGrade) decimal.Decimal {
	if c, ok := table[grade]; ok {
		return c
	}
	return table[entity.FoamD25]
}

// FoamFabricPrice precio TTC de espuma + tela de una banqueta, sin redondear.
// Tela ancha si ancho + 2×espesor > 140.
func (e *Engine) FoamFabricPrice(lengthCM, widthCM, thicknessCM int, grade entity.FoamGrade) decimal.Decimal {
	foam := volumeM3(lengthCM, widthCM, thicknessCM).Mul(foamCoef(e.cat.FoamPriceCoef, grade))

	rate := e.cat.FabricPriceNarrow
	if widthCM+2*thicknessCM > e.cat.FabricWidthLimitCM {
		rate = e.cat.FabricPriceWide
	}
	fabric := linearMeters(lengthCM).Mul(rate)

	return foam.Add(fabric)
}

// FoamFabricCost costo HT de espuma + tela de una banqueta, sin redondear.
// El lado costo compara 2 + ancho + 2×espesor <= 140 (no es el mismo umbral que el precio)
// y siempre suma el suplemento fijo de tela.
func (e *Engine) FoamFabricCost(lengthCM, widthCM, thicknessCM int, grade entity.FoamGrade) decimal.Decimal {
	foam := volumeM3(lengthCM, widthCM, thicknessCM).Mul(foamCoef(e.cat.FoamCostCoef, grade))

	rate := e.cat.FabricCostWide
	if 2+widthCM+2*thicknessCM <= e.cat.FabricWidthLimitCM {
		rate = e.cat.FabricCostNarrow
	}
	fabric := linearMeters(lengthCM).Mul(rate).Add(e.cat.FabricCostSupplement)

	return foam.Add(fabric)
}

// sectionUnitPrice precio TTC de espuma + tela tal como se factura (al céntimo).
// Lo usan tanto el agregador como el generador de líneas para que ambos cuadren.
func (e *Engine) sectionUnitPrice(s entity.SeatingSection) decimal.Decimal {
	return e.FoamFabricPrice(s.LengthCM, s.WidthCM, s.ThicknessCM, s.FoamGrade).Round(2)
}
