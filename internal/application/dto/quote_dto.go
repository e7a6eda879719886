package dto

import "github.com/shopspring/decimal"

// ConfigurationRequest body para POST /api/quotes, /api/quotes/pdf y /api/quotes/margin.
// Claves de cushions: "65", "80", "90", "valise", "valise_g", "valise_p", "valise_pg".
// Claves de accessories: "decorative_cushion", "bolster", "mattress_topper".
type ConfigurationRequest struct {
	SeatingSections []SeatingSectionRequest `json:"seating_sections"`
	Backrests       []BackrestRequest       `json:"backrests"`
	Armrests        ArmrestsRequest         `json:"armrests"`
	Cushions        map[string]int          `json:"cushions"`
	Accessories     map[string]int          `json:"accessories"`
	CustomerName    string                  `json:"customer_name,omitempty"` // solo se imprime en el PDF
}

// SeatingSectionRequest banqueta.
type SeatingSectionRequest struct {
	LengthCM    int    `json:"length_cm"`
	WidthCM     int    `json:"width_cm"`
	ThicknessCM int    `json:"thickness_cm"`
	FoamGrade   string `json:"foam_grade"` // D25 | D30 | HR35 | HR45
	IsCorner    bool   `json:"is_corner"`
}

// BackrestRequest respaldo.
type BackrestRequest struct {
	LengthCM int    `json:"length_cm"`
	Position string `json:"position,omitempty"` // left | bottom | right
}

// ArmrestsRequest apoyabrazos presentes.
type ArmrestsRequest struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// QuoteLineResponse línea del detalle.
type QuoteLineResponse struct {
	Label         string          `json:"label"`
	Quantity      int             `json:"quantity"`
	UnitPriceIncl decimal.Decimal `json:"unit_price_incl"`
	LineTotalIncl decimal.Decimal `json:"line_total_incl"`
}

// CategoryAmountResponse importe de una categoría y su peso sobre el total.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	SharePct decimal.Decimal `json:"share_pct"`
}

// QuoteSummaryResponse cotización para el cliente (sin costos ni márgenes).
type QuoteSummaryResponse struct {
	TotalPriceIncl decimal.Decimal          `json:"total_price_incl"`
	PriceBreakdown []CategoryAmountResponse `json:"price_breakdown"`
	Lines          []QuoteLineResponse      `json:"lines"`
}

// QuoteMarginResponse cotización interna con costos, beneficio y verificación de cuadre.
type QuoteMarginResponse struct {
	TotalPriceIncl decimal.Decimal          `json:"total_price_incl"`
	TotalPriceExcl decimal.Decimal          `json:"total_price_excl"`
	TotalCostExcl  decimal.Decimal          `json:"total_cost_excl"`
	ProfitExcl     decimal.Decimal          `json:"profit_excl"`
	ProfitRatio    decimal.Decimal          `json:"profit_ratio"` // % sobre el precio HT
	PriceBreakdown []CategoryAmountResponse `json:"price_breakdown"`
	CostBreakdown  []CategoryAmountResponse `json:"cost_breakdown"`
	Lines          []QuoteLineResponse      `json:"lines"`
	Reconciled     bool                     `json:"reconciled"` // Σ líneas == total TTC
	PrecutOptions  []PrecutOptionResponse   `json:"precut_options"`
}

// PrecutOptionResponse banqueta que coincide con una plancha pre-cortada del proveedor.
type PrecutOptionResponse struct {
	Section   int             `json:"section"` // 1-based
	Format    string          `json:"format"`
	FoamGrade string          `json:"foam_grade"`
	CostExcl  decimal.Decimal `json:"cost_excl"`
}

// CatalogResponse tablas públicas de precios (TTC).
type CatalogResponse struct {
	FoamGrades      []string                   `json:"foam_grades"`
	CushionPrices   map[string]decimal.Decimal `json:"cushion_prices"`
	SupportPrices   map[string]decimal.Decimal `json:"support_prices"`
	AccessoryPrices map[string]decimal.Decimal `json:"accessory_prices"`
	AccessoryLabels map[string]string          `json:"accessory_labels"`
	PrecutFormats   []string                   `json:"precut_formats"`
	Limits          LimitsResponse             `json:"limits"`
}

// LimitsResponse rangos aceptados por el formulario.
type LimitsResponse struct {
	MaxSections     int `json:"max_sections"`
	MaxBackrests    int `json:"max_backrests"`
	MinLengthCM     int `json:"min_length_cm"`
	MaxLengthCM     int `json:"max_length_cm"`
	MinWidthCM      int `json:"min_width_cm"`
	MaxWidthCM      int `json:"max_width_cm"`
	MinThicknessCM  int `json:"min_thickness_cm"`
	MaxThicknessCM  int `json:"max_thickness_cm"`
	MaxCushionsKind int `json:"max_cushions_per_kind"`
}
