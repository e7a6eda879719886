package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

// Engine calculadora de precios y costos. Inmutable tras NewEngine.
type Engine struct {
	cat Catalog
}

// NewEngine construye el motor con una copia del catálogo.
func NewEngine(cat Catalog) *Engine {
	return &Engine{cat: cat.clone()}
}

// NewDefaultEngine motor con las tablas vigentes.
func NewDefaultEngine() *Engine {
	return &Engine{cat: DefaultCatalog()}
}

// Catalog devuelve una copia del catálogo en uso.
func (e *Engine) Catalog() Catalog {
	return e.cat.clone()
}

// ── Cojines ───────────────────────────────────────────────────────────────────

// CushionPrice precio TTC unitario de un cojín. Tipo desconocido → 0.
func (e *Engine) CushionPrice(kind entity.CushionKind) decimal.Decimal {
	switch kind.Variant {
	case entity.CushionSized:
		if p, ok := e.cat.CushionPrice[kind.SizeCM]; ok {
			return p
		}
	case entity.CushionValise:
		if kind.Valise.Known() {
			return e.cat.ValisePrice
		}
	case entity.CushionUnknown:
	}
	return decimal.Zero
}

// CushionCost costo HT unitario de un cojín. Tipo desconocido → 0.
func (e *Engine) CushionCost(kind entity.CushionKind) decimal.Decimal {
	switch kind.Variant {
	case entity.CushionSized:
		if c, ok := e.cat.CushionCost[kind.SizeCM]; ok {
			return c
		}
	case entity.CushionValise:
		if kind.Valise.Known() {
			return e.cat.ValiseCost
		}
	case entity.CushionUnknown:
	}
	return decimal.Zero
}

// ── Soportes ──────────────────────────────────────────────────────────────────

// SupportPrice precio TTC fijo de un soporte. Tipo desconocido → 0.
func (e *Engine) SupportPrice(kind SupportKind) decimal.Decimal {
	if p, ok := e.cat.SupportPrice[kind]; ok {
		return p
	}
	return decimal.Zero
}

func seatSupportKind(isCorner bool) SupportKind {
	if isCorner {
		return SupportSeatCorner
	}
	return SupportSeatStraight
}

// SeatingSupportCost costo HT del soporte de una banqueta. No guarda relación con su precio de venta.
func (e *Engine) SeatingSupportCost(lengthCM int, isCorner bool) decimal.Decimal {
	if isCorner {
		return e.cat.CornerSeatSupportCost
	}
	return e.cat.StraightSeatSupport.For(lengthCM)
}

// BackrestCost costo HT del soporte de un respaldo.
func (e *Engine) BackrestCost(lengthCM int) decimal.Decimal {
	return e.cat.BackrestSupport.For(lengthCM)
}

// ArmrestCost costo HT fijo por apoyabrazos.
func (e *Engine) ArmrestCost() decimal.Decimal {
	return e.cat.ArmrestCost
}

// RoundingAdjustment costo HT fijo que se añade una vez por cotización.
func (e *Engine) RoundingAdjustment() decimal.Decimal {
	return e.cat.RoundingAdjustment
}

// ── Accesorios ────────────────────────────────────────────────────────────────

// AccessoryPrice precio TTC unitario. Tipo desconocido → 0.
func (e *Engine) AccessoryPrice(kind entity.AccessoryKind) decimal.Decimal {
	if p, ok := e.cat.AccessoryPrice[kind]; ok {
		return p
	}
	return decimal.Zero
}

// AccessoryCost costo HT unitario. Tipo desconocido → 0.
func (e *Engine) AccessoryCost(kind entity.AccessoryKind) decimal.Decimal {
	if c, ok := e.cat.AccessoryCost[kind]; ok {
		return c
	}
	return decimal.Zero
}

// AccessoryLabel etiqueta de presentación; un tipo desconocido se muestra tal cual.
func (e *Engine) AccessoryLabel(kind entity.AccessoryKind) string {
	if l, ok := e.cat.AccessoryLabels[kind]; ok {
		return l
	}
	return string(kind)
}

// ── Espuma pre-cortada ────────────────────────────────────────────────────────

// PrecutFoamCost costo HT de una plancha pre-cortada ("200x80x25", ...). ok=false si no existe.
func (e *Engine) PrecutFoamCost(format string, grade entity.FoamGrade) (decimal.Decimal, bool) {
	grades, ok := e.cat.PrecutFoamCost[format]
	if !ok {
		return decimal.Zero, false
	}
	c, ok := grades[grade]
	return c, ok
}

// PrecutFormat formato "LxWxT" de una banqueta, la clave de la tabla pre-cortada.
func PrecutFormat(s entity.SeatingSection) string {
	return fmt.Sprintf("%dx%dx%d", s.LengthCM, s.WidthCM, s.ThicknessCM)
}

// SectionPrecutCost costo HT de la plancha pre-cortada que corresponde exactamente a la banqueta.
func (e *Engine) SectionPrecutCost(s entity.SeatingSection) (format string, cost decimal.Decimal, ok bool) {
	format = PrecutFormat(s)
	cost, ok = e.PrecutFoamCost(format, s.FoamGrade)
	return format, cost, ok
}

// PrecutFormats formatos pre-cortados disponibles, ordenados.
func (e *Engine) PrecutFormats() []string {
	out := make([]string, 0, len(e.cat.PrecutFoamCost))
	for f := range e.cat.PrecutFoamCost {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
