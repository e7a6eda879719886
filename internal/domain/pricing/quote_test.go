package pricing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canape-quote/internal/domain"
	"github.com/jhoicas/canape-quote/internal/domain/entity"
	"github.com/jhoicas/canape-quote/internal/domain/pricing"
)

// referenceConfiguration: una banqueta recta 200×80×25 D25, respaldo 200, dos apoyabrazos, 2 cojines de 65.
func referenceConfiguration() entity.Configuration {
	return entity.Configuration{
		SeatingSections: []entity.SeatingSection{
			{LengthCM: 200, WidthCM: 80, ThicknessCM: 25, FoamGrade: entity.FoamD25},
		},
		Backrests: []entity.Backrest{{LengthCM: 200}},
		Armrests:  entity.Armrests{Left: true, Right: true},
		Cushions:  map[entity.CushionKind]int{entity.SizedCushion(65): 2},
	}
}

// workshopConfiguration: el ejemplo de dos banquetas usado en el taller.
func workshopConfiguration() entity.Configuration {
	return entity.Configuration{
		SeatingSections: []entity.SeatingSection{
			{LengthCM: 200, WidthCM: 80, ThicknessCM: 25, FoamGrade: entity.FoamD25},
			{LengthCM: 180, WidthCM: 80, ThicknessCM: 25, FoamGrade: entity.FoamD25},
		},
		Backrests: []entity.Backrest{{LengthCM: 200}, {LengthCM: 180}},
		Armrests:  entity.Armrests{Left: true, Right: true},
		Cushions: map[entity.CushionKind]int{
			entity.SizedCushion(65):                   2,
			entity.SizedCushion(80):                   4,
			entity.ValiseCushion(entity.ValiseStandard): 1,
		},
		Accessories: map[entity.AccessoryKind]int{
			entity.AccessoryDecorativeCushion: 2,
			entity.AccessoryBolster:           1,
			entity.AccessoryMattressTopper:    0,
		},
	}
}

func TestCalculate_ConfiguracionDeReferencia(t *testing.T) {
	e := pricing.NewDefaultEngine()

	q, err := e.Calculate(referenceConfiguration())
	require.NoError(t, err)

	// 308 + 250 + 250 + 2×225 + 2×35
	assertDec(t, "1328.00", q.TotalPriceIncl)
	assertDec(t, "308", q.PriceBreakdown[entity.CategorySeatingFoamFabric])
	assertDec(t, "250", q.PriceBreakdown[entity.CategorySeatingSupports])
	assertDec(t, "250", q.PriceBreakdown[entity.CategoryBackrests])
	assertDec(t, "450", q.PriceBreakdown[entity.CategoryArmrests])
	assertDec(t, "70", q.PriceBreakdown[entity.CategoryCushions])
	assertDec(t, "0", q.PriceBreakdown[entity.CategoryAccessories])
	_, hasRounding := q.PriceBreakdown[entity.CategoryRoundingAdjustment]
	assert.False(t, hasRounding, "el ajuste de redondeo solo existe del lado costo")

	// 100,4 + 113 + 155,2 + 146 + 28 + 6,05
	assertDec(t, "548.65", q.TotalCostExcl)
	assertDec(t, "100.4", q.CostBreakdown[entity.CategorySeatingFoamFabric])
	assertDec(t, "113", q.CostBreakdown[entity.CategorySeatingSupports])
	assertDec(t, "155.2", q.CostBreakdown[entity.CategoryBackrests])
	assertDec(t, "146", q.CostBreakdown[entity.CategoryArmrests])
	assertDec(t, "28", q.CostBreakdown[entity.CategoryCushions])
	assertDec(t, "6.05", q.CostBreakdown[entity.CategoryRoundingAdjustment])

	// 1328 / 1,2 − 548,65 = 558,0166…
	assertDec(t, "558.02", q.ProfitExcl)
	assertDec(t, "50.4", q.ProfitRatio)
}

func TestCalculate_EjemploTaller(t *testing.T) {
	e := pricing.NewDefaultEngine()

	q, err := e.Calculate(workshopConfiguration())
	require.NoError(t, err)

	assertDec(t, "2411.2", q.TotalPriceIncl)
	assertDec(t, "585.2", q.PriceBreakdown[entity.CategorySeatingFoamFabric])
	assertDec(t, "316", q.PriceBreakdown[entity.CategoryCushions])
	assertDec(t, "60", q.PriceBreakdown[entity.CategoryAccessories])

	assertDec(t, "1032.31", q.TotalCostExcl)
	assertDec(t, "192.26", q.CostBreakdown[entity.CategorySeatingFoamFabric])
	assertDec(t, "121", q.CostBreakdown[entity.CategoryCushions])
	assertDec(t, "30.6", q.CostBreakdown[entity.CategoryAccessories])

	assertDec(t, "977.02", q.ProfitExcl)
}

func TestCalculate_BeneficioDerivadoDeTotales(t *testing.T) {
	e := pricing.NewDefaultEngine()

	for _, cfg := range []entity.Configuration{referenceConfiguration(), workshopConfiguration(), hrConfiguration()} {
		q, err := e.Calculate(cfg)
		require.NoError(t, err)
		want := q.TotalPriceIncl.Div(dec("1.2")).Sub(q.TotalCostExcl).Round(2)
		assert.True(t, want.Equal(q.ProfitExcl), "beneficio %s, esperado %s", q.ProfitExcl, want)
	}
}

func TestCalculate_EsquinaVsRecta(t *testing.T) {
	e := pricing.NewDefaultEngine()

	corner, err := e.Calculate(entity.Configuration{
		SeatingSections: []entity.SeatingSection{{LengthCM: 190, WidthCM: 80, ThicknessCM: 25, FoamGrade: entity.FoamD25, IsCorner: true}},
	})
	require.NoError(t, err)
	straight, err := e.Calculate(entity.Configuration{
		SeatingSections: []entity.SeatingSection{{LengthCM: 190, WidthCM: 80, ThicknessCM: 25, FoamGrade: entity.FoamD25}},
	})
	require.NoError(t, err)

	assertDec(t, "104.2", corner.CostBreakdown[entity.CategorySeatingSupports])
	assertDec(t, "113", straight.CostBreakdown[entity.CategorySeatingSupports])
	assertDec(t, "250", corner.PriceBreakdown[entity.CategorySeatingSupports])
	assertDec(t, "250", straight.PriceBreakdown[entity.CategorySeatingSupports])
}

func TestCalculate_ClavesDesconocidasAportanCero(t *testing.T) {
	e := pricing.NewDefaultEngine()

	q, err := e.Calculate(entity.Configuration{
		Cushions: map[entity.CushionKind]int{
			entity.ParseCushionKind("120"):       3,
			entity.ParseCushionKind("pouf"):      2,
			entity.ParseCushionKind("valise_xl"): 1,
		},
		Accessories: map[entity.AccessoryKind]int{"lamp": 4},
	})
	require.NoError(t, err)

	assertDec(t, "0", q.PriceBreakdown[entity.CategoryCushions])
	assertDec(t, "0", q.CostBreakdown[entity.CategoryCushions])
	assertDec(t, "0", q.PriceBreakdown[entity.CategoryAccessories])
	assertDec(t, "0", q.CostBreakdown[entity.CategoryAccessories])
	assertDec(t, "0", q.TotalPriceIncl)
	assertDec(t, "6.05", q.TotalCostExcl, "solo queda el ajuste de redondeo")
	assertDec(t, "-6.05", q.ProfitExcl)
	assertDec(t, "0", q.ProfitRatio, "sin precio el ratio queda en 0")
}

func TestCalculate_GradoDesconocidoIgualQueD25(t *testing.T) {
	e := pricing.NewDefaultEngine()

	withGrade := func(g entity.FoamGrade) entity.Configuration {
		return entity.Configuration{SeatingSections: []entity.SeatingSection{
			{LengthCM: 230, WidthCM: 95, ThicknessCM: 30, FoamGrade: g},
		}}
	}
	d25, err := e.Calculate(withGrade(entity.FoamD25))
	require.NoError(t, err)
	other, err := e.Calculate(withGrade("XX"))
	require.NoError(t, err)

	assert.True(t, d25.TotalPriceIncl.Equal(other.TotalPriceIncl))
	assert.True(t, d25.TotalCostExcl.Equal(other.TotalCostExcl))
}

func TestCalculate_ConfiguracionVacia(t *testing.T) {
	e := pricing.NewDefaultEngine()

	q, err := e.Calculate(entity.Configuration{})
	require.NoError(t, err)

	assertDec(t, "0", q.TotalPriceIncl)
	assertDec(t, "6.05", q.TotalCostExcl)
	assert.Len(t, q.PriceBreakdown, len(entity.PriceCategories))
	assert.Len(t, q.CostBreakdown, len(entity.CostCategories))
}

func TestCalculate_ConfiguracionMalFormada(t *testing.T) {
	e := pricing.NewDefaultEngine()

	cases := map[string]entity.Configuration{
		"cojines negativos": {Cushions: map[entity.CushionKind]int{entity.SizedCushion(65): -1}},
		"accesorio negativo": {Accessories: map[entity.AccessoryKind]int{entity.AccessoryBolster: -2}},
		"banqueta sin largo": {SeatingSections: []entity.SeatingSection{{WidthCM: 80, ThicknessCM: 25}}},
		"respaldo negativo":  {Backrests: []entity.Backrest{{LengthCM: -10}}},
	}
	for name, cfg := range cases {
		_, err := e.Calculate(cfg)
		assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration), "%s: %v", name, err)

		_, err = e.Lines(cfg)
		assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration), "%s (líneas): %v", name, err)
	}
}
