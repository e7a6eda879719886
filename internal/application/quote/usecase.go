// Package quote contiene los casos de uso de cotización: validación del formulario,
// cálculo con el motor de tarificación y salida resumida, interna o en PDF.
package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/domain/entity"
	"github.com/jhoicas/canape-quote/internal/domain/pricing"
	"github.com/jhoicas/canape-quote/pkg/logger"
)

// Options datos impresos en la cotización.
type Options struct {
	ShopName     string
	ValidityDays int
	Now          func() time.Time // opcional; por defecto time.Now
}

// QuoteUseCase orquesta motor, validación y generador de PDF. Sin estado mutable.
type QuoteUseCase struct {
	engine *pricing.Engine
	pdf    QuotePDFGenerator
	limits Limits
	opts   Options
	log    *logger.Logger
}

// NewQuoteUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewQuoteUseCase(engine *pricing.Engine, pdf QuotePDFGenerator, log *logger.Logger, opts Options) *QuoteUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{
		engine: engine,
		pdf:    pdf,
		limits: DefaultLimits(),
		opts:   opts,
		log:    log.Component("quote"),
	}
}

type evaluation struct {
	cfg   entity.Configuration
	quote entity.Quote
	lines []entity.QuoteLine
}

// evaluate valida el formulario y calcula resumen y líneas a partir de la misma configuración.
func (uc *QuoteUseCase) evaluate(ctx context.Context, in dto.ConfigurationRequest) (*evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := uc.limits.toConfiguration(in)
	if err != nil {
		return nil, err
	}
	for kind := range cfg.Cushions {
		if kind.Variant == entity.CushionUnknown || uc.engine.CushionPrice(kind).IsZero() {
			uc.log.Warn().Str("cushion", kind.String()).Msg("tipo de cojín fuera de catálogo, valorado en 0")
		}
	}
	for kind := range cfg.Accessories {
		if uc.engine.AccessoryPrice(kind).IsZero() {
			uc.log.Warn().Str("accessory", string(kind)).Msg("accesorio fuera de catálogo, valorado en 0")
		}
	}

	q, err := uc.engine.Calculate(cfg)
	if err != nil {
		return nil, fmt.Errorf("quote: calcular: %w", err)
	}
	lines, err := uc.engine.Lines(cfg)
	if err != nil {
		return nil, fmt.Errorf("quote: generar líneas: %w", err)
	}
	if sum := entity.LinesTotal(lines); !sum.Equal(q.TotalPriceIncl) {
		uc.log.Error().
			Str("lines_total", sum.StringFixed(2)).
			Str("total_price_incl", q.TotalPriceIncl.StringFixed(2)).
			Msg("las líneas no cuadran con el total")
	}

	uc.log.Debug().
		Int("sections", len(cfg.SeatingSections)).
		Int("lines", len(lines)).
		Str("total_price_incl", q.TotalPriceIncl.StringFixed(2)).
		Msg("cotización calculada")

	return &evaluation{cfg: cfg, quote: q, lines: lines}, nil
}

// Summary cotización para el cliente: total TTC, desglose de precio y líneas.
//
// Retorna domain.ErrInvalidInput si la configuración no respeta los rangos del formulario.
func (uc *QuoteUseCase) Summary(ctx context.Context, in dto.ConfigurationRequest) (*dto.QuoteSummaryResponse, error) {
	ev, err := uc.evaluate(ctx, in)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteSummaryResponse{
		TotalPriceIncl: ev.quote.TotalPriceIncl,
		PriceBreakdown: toCategoryAmounts(entity.PriceCategories, ev.quote.PriceBreakdown, ev.quote.TotalPriceIncl),
		Lines:          toLineResponses(ev.lines),
	}, nil
}

// Margin cotización interna: añade costo HT, beneficio, ratio y el cuadre líneas/total.
func (uc *QuoteUseCase) Margin(ctx context.Context, in dto.ConfigurationRequest) (*dto.QuoteMarginResponse, error) {
	ev, err := uc.evaluate(ctx, in)
	if err != nil {
		return nil, err
	}
	q := ev.quote
	return &dto.QuoteMarginResponse{
		TotalPriceIncl: q.TotalPriceIncl,
		TotalPriceExcl: uc.engine.PriceExcl(q.TotalPriceIncl).Round(2),
		TotalCostExcl:  q.TotalCostExcl,
		ProfitExcl:     q.ProfitExcl,
		ProfitRatio:    q.ProfitRatio,
		PriceBreakdown: toCategoryAmounts(entity.PriceCategories, q.PriceBreakdown, q.TotalPriceIncl),
		CostBreakdown:  toCategoryAmounts(entity.CostCategories, q.CostBreakdown, q.TotalCostExcl),
		Lines:          toLineResponses(ev.lines),
		Reconciled:     entity.LinesTotal(ev.lines).Equal(q.TotalPriceIncl),
		PrecutOptions:  uc.precutOptions(ev.cfg),
	}, nil
}

// precutOptions banquetas que el taller puede fabricar con una plancha pre-cortada.
func (uc *QuoteUseCase) precutOptions(cfg entity.Configuration) []dto.PrecutOptionResponse {
	out := make([]dto.PrecutOptionResponse, 0)
	for i, s := range cfg.SeatingSections {
		format, cost, ok := uc.engine.SectionPrecutCost(s)
		if !ok {
			continue
		}
		out = append(out, dto.PrecutOptionResponse{
			Section:   i + 1,
			Format:    format,
			FoamGrade: string(s.FoamGrade),
			CostExcl:  cost,
		})
	}
	return out
}

// PDF genera la cotización imprimible. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *QuoteUseCase) PDF(ctx context.Context, in dto.ConfigurationRequest) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("quote: generador PDF no configurado")
	}
	ev, err := uc.evaluate(ctx, in)
	if err != nil {
		return nil, "", err
	}

	now := uc.opts.Now()
	total := ev.quote.TotalPriceIncl
	excl := uc.engine.PriceExcl(total).Round(2)
	doc := QuoteDocument{
		Reference:      uuid.New().String(),
		IssuedAt:       now,
		ValidUntil:     now.AddDate(0, 0, uc.opts.ValidityDays),
		ShopName:       uc.opts.ShopName,
		CustomerName:   in.CustomerName,
		Lines:          ev.lines,
		TotalPriceIncl: total,
		TotalPriceExcl: excl,
		TaxAmount:      total.Sub(excl),
	}

	pdfBytes, err = uc.pdf.GenerateQuotePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("quote: generación PDF fallida: %w", err)
	}
	uc.log.Info().Str("reference", doc.Reference).Int("bytes", len(pdfBytes)).Msg("PDF de cotización generado")

	filename = fmt.Sprintf("devis_%s.pdf", doc.Reference[:8])
	return pdfBytes, filename, nil
}

// Catalog tablas públicas de precios y rangos del formulario.
func (uc *QuoteUseCase) Catalog() *dto.CatalogResponse {
	cat := uc.engine.Catalog()

	grades := make([]string, 0, len(entity.FoamGrades))
	for _, g := range entity.FoamGrades {
		grades = append(grades, string(g))
	}
	cushions := make(map[string]decimal.Decimal, len(cat.CushionPrice)+4)
	for size, p := range cat.CushionPrice {
		cushions[entity.SizedCushion(size).String()] = p
	}
	for _, tag := range []entity.ValiseTag{entity.ValiseStandard, entity.ValiseLarge, entity.ValiseSmall, entity.ValiseSmallLarge} {
		cushions[string(tag)] = cat.ValisePrice
	}
	supports := make(map[string]decimal.Decimal, len(cat.SupportPrice))
	for k, p := range cat.SupportPrice {
		supports[string(k)] = p
	}
	accessories := make(map[string]decimal.Decimal, len(cat.AccessoryPrice))
	for k, p := range cat.AccessoryPrice {
		accessories[string(k)] = p
	}
	labels := make(map[string]string, len(cat.AccessoryLabels))
	for k, l := range cat.AccessoryLabels {
		labels[string(k)] = l
	}

	l := uc.limits
	return &dto.CatalogResponse{
		FoamGrades:      grades,
		CushionPrices:   cushions,
		SupportPrices:   supports,
		AccessoryPrices: accessories,
		AccessoryLabels: labels,
		PrecutFormats:   uc.engine.PrecutFormats(),
		Limits: dto.LimitsResponse{
			MaxSections:     l.MaxSections,
			MaxBackrests:    l.MaxBackrests,
			MinLengthCM:     l.MinLengthCM,
			MaxLengthCM:     l.MaxLengthCM,
			MinWidthCM:      l.MinWidthCM,
			MaxWidthCM:      l.MaxWidthCM,
			MinThicknessCM:  l.MinThicknessCM,
			MaxThicknessCM:  l.MaxThicknessCM,
			MaxCushionsKind: l.MaxCushionsPerKind,
		},
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func toCategoryAmounts(order []entity.Category, b entity.Breakdown, total decimal.Decimal) []dto.CategoryAmountResponse {
	shares := b.Shares(total)
	out := make([]dto.CategoryAmountResponse, 0, len(order))
	for _, c := range order {
		out = append(out, dto.CategoryAmountResponse{
			Category: string(c),
			Amount:   b[c],
			SharePct: shares[c],
		})
	}
	return out
}

func toLineResponses(lines []entity.QuoteLine) []dto.QuoteLineResponse {
	out := make([]dto.QuoteLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.QuoteLineResponse{
			Label:         l.Label,
			Quantity:      l.Quantity,
			UnitPriceIncl: l.UnitPriceIncl,
			LineTotalIncl: l.LineTotalIncl,
		})
	}
	return out
}
