package pricing

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

func newLine(label string, qty int, unit decimal.Decimal) entity.QuoteLine {
	unit = unit.Round(2)
	return entity.QuoteLine{
		Label:         label,
		Quantity:      qty,
		UnitPriceIncl: unit,
		LineTotalIncl: unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// Lines genera una línea por pieza física, en orden de presentación:
// banquetas (espuma + tela y luego su soporte), respaldos, apoyabrazos (izquierdo antes que derecho),
// cojines y accesorios con cantidad > 0. Usa los mismos precios unitarios que Calculate,
// por lo que Σ LineTotalIncl == Quote.TotalPriceIncl.
func (e *Engine) Lines(cfg entity.Configuration) ([]entity.QuoteLine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lines := make([]entity.QuoteLine, 0, 2*len(cfg.SeatingSections)+len(cfg.Backrests)+2+len(cfg.Cushions)+len(cfg.Accessories))

	for i, s := range cfg.SeatingSections {
		lines = append(lines, newLine(
			fmt.Sprintf("Seating section %d - %s foam + fabric (%dx%dx%dcm)",
				i+1, s.FoamGrade, s.LengthCM, s.WidthCM, s.ThicknessCM),
			1, e.sectionUnitPrice(s),
		))
		label := "Straight support"
		if s.IsCorner {
			label = "Corner support"
		}
		lines = append(lines, newLine(label, 1, e.SupportPrice(seatSupportKind(s.IsCorner))))
	}

	for i, b := range cfg.Backrests {
		label := fmt.Sprintf("Backrest %d (%dcm)", i+1, b.LengthCM)
		if b.Position != "" {
			label = fmt.Sprintf("Backrest %d - %s (%dcm)", i+1, b.Position, b.LengthCM)
		}
		lines = append(lines, newLine(label, 1, e.SupportPrice(SupportBackrest)))
	}

	if cfg.Armrests.Left {
		lines = append(lines, newLine("Left armrest", 1, e.SupportPrice(SupportArmrest)))
	}
	if cfg.Armrests.Right {
		lines = append(lines, newLine("Right armrest", 1, e.SupportPrice(SupportArmrest)))
	}

	for _, kind := range sortedCushions(cfg.Cushions) {
		qty := cfg.Cushions[kind]
		if qty <= 0 {
			continue
		}
		lines = append(lines, newLine(cushionLabel(kind), qty, e.CushionPrice(kind)))
	}

	for _, kind := range sortedAccessories(cfg.Accessories) {
		qty := cfg.Accessories[kind]
		if qty <= 0 {
			continue
		}
		lines = append(lines, newLine(e.AccessoryLabel(kind), qty, e.AccessoryPrice(kind)))
	}

	return lines, nil
}

func cushionLabel(kind entity.CushionKind) string {
	switch {
	case kind.LooksLikeValise():
		return "Valise cushion"
	case kind.Variant == entity.CushionSized:
		return fmt.Sprintf("Cushion %dcm", kind.SizeCM)
	default:
		return "Cushion " + kind.Raw
	}
}

// cushionRank: por tamaño primero, luego valise, desconocidos al final.
func cushionRank(v entity.CushionVariant) int {
	switch v {
	case entity.CushionSized:
		return 0
	case entity.CushionValise:
		return 1
	default:
		return 2
	}
}

func sortedCushions(m map[entity.CushionKind]int) []entity.CushionKind {
	keys := make([]entity.CushionKind, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if ra, rb := cushionRank(a.Variant), cushionRank(b.Variant); ra != rb {
			return ra < rb
		}
		if a.SizeCM != b.SizeCM {
			return a.SizeCM < b.SizeCM
		}
		return a.String() < b.String()
	})
	return keys
}

// sortedAccessories: orden del catálogo, desconocidos al final por nombre.
func sortedAccessories(m map[entity.AccessoryKind]int) []entity.AccessoryKind {
	keys := make([]entity.AccessoryKind, 0, len(m))
	for _, k := range entity.Accessories {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var unknown []entity.AccessoryKind
	for k := range m {
		if !slices.Contains(entity.Accessories, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(keys, unknown...)
}
