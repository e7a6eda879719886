package quote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/internal/domain"
	"github.com/jhoicas/canape-quote/internal/domain/pricing"
)

type fakePDF struct {
	doc quote.QuoteDocument
	err error
}

func (f *fakePDF) GenerateQuotePDF(_ context.Context, doc quote.QuoteDocument) ([]byte, error) {
	f.doc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newUseCase(pdf quote.QuotePDFGenerator) *quote.QuoteUseCase {
	return quote.NewQuoteUseCase(pricing.NewDefaultEngine(), pdf, nil, quote.Options{
		ShopName:     "Atelier Test",
		ValidityDays: 30,
		Now:          func() time.Time { return fixedNow },
	})
}

func referenceRequest() dto.ConfigurationRequest {
	return dto.ConfigurationRequest{
		SeatingSections: []dto.SeatingSectionRequest{
			{LengthCM: 200, WidthCM: 80, ThicknessCM: 25, FoamGrade: "D25"},
		},
		Backrests: []dto.BackrestRequest{{LengthCM: 200}},
		Armrests:  dto.ArmrestsRequest{Left: true, Right: true},
		Cushions:  map[string]int{"65": 2},
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

func TestSummary_SinCostos(t *testing.T) {
	uc := newUseCase(nil)

	res, err := uc.Summary(context.Background(), referenceRequest())
	require.NoError(t, err)

	assertDec(t, "1328", res.TotalPriceIncl)
	require.Len(t, res.PriceBreakdown, 6)
	assert.Equal(t, "seating_foam_fabric", res.PriceBreakdown[0].Category)
	assertDec(t, "308", res.PriceBreakdown[0].Amount)
	assertDec(t, "23.2", res.PriceBreakdown[0].SharePct)

	sum := decimal.Zero
	for _, l := range res.Lines {
		sum = sum.Add(l.LineTotalIncl)
	}
	assertDec(t, "1328", sum)
}

func TestMargin_ConCostosYBeneficio(t *testing.T) {
	uc := newUseCase(nil)

	res, err := uc.Margin(context.Background(), referenceRequest())
	require.NoError(t, err)

	assertDec(t, "1328", res.TotalPriceIncl)
	assertDec(t, "1106.67", res.TotalPriceExcl)
	assertDec(t, "548.65", res.TotalCostExcl)
	assertDec(t, "558.02", res.ProfitExcl)
	assertDec(t, "50.4", res.ProfitRatio)
	assert.True(t, res.Reconciled)
	require.Len(t, res.CostBreakdown, 7)
	assert.Equal(t, "rounding_adjustment", res.CostBreakdown[6].Category)
	assertDec(t, "6.05", res.CostBreakdown[6].Amount)
}

func TestMargin_PlanchasPrecortadas(t *testing.T) {
	uc := newUseCase(nil)
	req := referenceRequest()
	req.SeatingSections = append(req.SeatingSections,
		dto.SeatingSectionRequest{LengthCM: 180, WidthCM: 80, ThicknessCM: 25, FoamGrade: "D25"},
		dto.SeatingSectionRequest{LengthCM: 90, WidthCM: 90, ThicknessCM: 25, FoamGrade: "HR45", IsCorner: true},
	)

	res, err := uc.Margin(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.PrecutOptions, 2)

	assert.Equal(t, 1, res.PrecutOptions[0].Section)
	assert.Equal(t, "200x80x25", res.PrecutOptions[0].Format)
	assert.Equal(t, "D25", res.PrecutOptions[0].FoamGrade)
	assertDec(t, "63", res.PrecutOptions[0].CostExcl)

	assert.Equal(t, 3, res.PrecutOptions[1].Section)
	assert.Equal(t, "90x90x25", res.PrecutOptions[1].Format)
	assertDec(t, "49.6", res.PrecutOptions[1].CostExcl)
}

func TestSummary_ValidaRangos(t *testing.T) {
	uc := newUseCase(nil)

	cases := map[string]func(r *dto.ConfigurationRequest){
		"sin banquetas":      func(r *dto.ConfigurationRequest) { r.SeatingSections = nil },
		"largo corto":        func(r *dto.ConfigurationRequest) { r.SeatingSections[0].LengthCM = 49 },
		"ancho excesivo":     func(r *dto.ConfigurationRequest) { r.SeatingSections[0].WidthCM = 151 },
		"espesor excesivo":   func(r *dto.ConfigurationRequest) { r.SeatingSections[0].ThicknessCM = 41 },
		"espuma desconocida": func(r *dto.ConfigurationRequest) { r.SeatingSections[0].FoamGrade = "D99" },
		"posición inválida":  func(r *dto.ConfigurationRequest) { r.Backrests[0].Position = "top" },
		"cojines negativos":  func(r *dto.ConfigurationRequest) { r.Cushions["65"] = -1 },
		"demasiados surmatelas": func(r *dto.ConfigurationRequest) {
			r.Accessories = map[string]int{"mattress_topper": 6}
		},
		"cuatro respaldos": func(r *dto.ConfigurationRequest) {
			r.Backrests = []dto.BackrestRequest{{LengthCM: 100}, {LengthCM: 100}, {LengthCM: 100}, {LengthCM: 100}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := referenceRequest()
			mutate(&req)
			_, err := uc.Summary(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err = %v", err)
		})
	}
}

func TestSummary_ClavesDesconocidasValenCero(t *testing.T) {
	uc := newUseCase(nil)
	req := referenceRequest()
	req.Cushions["70"] = 3
	req.Cushions["round"] = 1
	req.Accessories = map[string]int{"throw_blanket": 2}

	res, err := uc.Summary(context.Background(), req)
	require.NoError(t, err)
	assertDec(t, "1328", res.TotalPriceIncl)
}

func TestSummary_VariantesDeClaveNoSumanCojines(t *testing.T) {
	uc := newUseCase(nil)
	req := referenceRequest()
	req.Cushions = map[string]int{"65": 20, "065": 20, " 65": 20, "+65": 20}

	res, err := uc.Summary(context.Background(), req)
	require.NoError(t, err)
	// 1328 - 2 x 35 + 20 x 35: solo "65" es la clave del catálogo.
	assertDec(t, "1958", res.TotalPriceIncl)

	var sized int
	for _, l := range res.Lines {
		if l.Label == "Cushion 65cm" {
			sized += l.Quantity
		}
	}
	assert.Equal(t, 20, sized)
}

func TestSummary_ContextoCancelado(t *testing.T) {
	uc := newUseCase(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Summary(ctx, referenceRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDF_ArmaElDocumento(t *testing.T) {
	gen := &fakePDF{}
	uc := newUseCase(gen)
	req := referenceRequest()
	req.CustomerName = "Mme Dupont"

	b, filename, err := uc.PDF(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(b))
	assert.Regexp(t, `^devis_[0-9a-f]{8}\.pdf$`, filename)

	doc := gen.doc
	assert.Equal(t, "Atelier Test", doc.ShopName)
	assert.Equal(t, "Mme Dupont", doc.CustomerName)
	assert.Equal(t, fixedNow, doc.IssuedAt)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), doc.ValidUntil)
	assert.Len(t, doc.Reference, 36)
	assertDec(t, "1328", doc.TotalPriceIncl)
	assertDec(t, "1106.67", doc.TotalPriceExcl)
	assertDec(t, "221.33", doc.TaxAmount)
	assert.NotEmpty(t, doc.Lines)
}

func TestPDF_ErrorDelGenerador(t *testing.T) {
	uc := newUseCase(&fakePDF{err: errors.New("disco lleno")})

	_, _, err := uc.PDF(context.Background(), referenceRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco lleno")
}

func TestPDF_SinGenerador(t *testing.T) {
	uc := newUseCase(nil)

	_, _, err := uc.PDF(context.Background(), referenceRequest())
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	uc := newUseCase(nil)

	cat := uc.Catalog()
	assert.Equal(t, []string{"D25", "D30", "HR35", "HR45"}, cat.FoamGrades)
	assertDec(t, "35", cat.CushionPrices["65"])
	assertDec(t, "44", cat.CushionPrices["80"])
	assert.Contains(t, cat.CushionPrices, "valise_pg")
	assertDec(t, "250", cat.SupportPrices["seat_section_straight"])
	assert.Equal(t, "Bolster", cat.AccessoryLabels["bolster"])
	assert.Equal(t, 5, cat.Limits.MaxSections)
	assert.Equal(t, 300, cat.Limits.MaxLengthCM)
}
