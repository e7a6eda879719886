package quote

import (
	"fmt"
	"slices"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/domain"
	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

// Limits rangos que el formulario de configuración impone antes de llamar al motor.
// El motor no los vuelve a validar.
type Limits struct {
	MinSections, MaxSections       int
	MaxBackrests                   int
	MinLengthCM, MaxLengthCM       int
	MinWidthCM, MaxWidthCM         int
	MinThicknessCM, MaxThicknessCM int
	MaxCushionsPerKind             int
	MaxAccessories                 map[entity.AccessoryKind]int
}

// DefaultLimits límites del formulario del taller.
func DefaultLimits() Limits {
	return Limits{
		MinSections:        1,
		MaxSections:        5,
		MaxBackrests:       3, // izquierdo, bajo, derecho
		MinLengthCM:        50,
		MaxLengthCM:        300,
		MinWidthCM:         50,
		MaxWidthCM:         150,
		MinThicknessCM:     10,
		MaxThicknessCM:     40,
		MaxCushionsPerKind: 20,
		MaxAccessories: map[entity.AccessoryKind]int{
			entity.AccessoryDecorativeCushion: 20,
			entity.AccessoryBolster:           10,
			entity.AccessoryMattressTopper:    5,
		},
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// toConfiguration valida rangos y construye la configuración de dominio.
// Las claves de cojín / accesorio desconocidas pasan tal cual: el motor las valora en 0.
func (l Limits) toConfiguration(in dto.ConfigurationRequest) (entity.Configuration, error) {
	n := len(in.SeatingSections)
	if n < l.MinSections || n > l.MaxSections {
		return entity.Configuration{}, invalid("se requieren entre %d y %d banquetas (recibidas %d)", l.MinSections, l.MaxSections, n)
	}
	if len(in.Backrests) > l.MaxBackrests {
		return entity.Configuration{}, invalid("máximo %d respaldos", l.MaxBackrests)
	}

	cfg := entity.Configuration{
		SeatingSections: make([]entity.SeatingSection, 0, n),
		Backrests:       make([]entity.Backrest, 0, len(in.Backrests)),
		Armrests:        entity.Armrests{Left: in.Armrests.Left, Right: in.Armrests.Right},
		Cushions:        make(map[entity.CushionKind]int, len(in.Cushions)),
		Accessories:     make(map[entity.AccessoryKind]int, len(in.Accessories)),
	}

	for i, s := range in.SeatingSections {
		if s.LengthCM < l.MinLengthCM || s.LengthCM > l.MaxLengthCM {
			return entity.Configuration{}, invalid("banqueta %d: largo %d fuera de [%d, %d]", i+1, s.LengthCM, l.MinLengthCM, l.MaxLengthCM)
		}
		if s.WidthCM < l.MinWidthCM || s.WidthCM > l.MaxWidthCM {
			return entity.Configuration{}, invalid("banqueta %d: ancho %d fuera de [%d, %d]", i+1, s.WidthCM, l.MinWidthCM, l.MaxWidthCM)
		}
		if s.ThicknessCM < l.MinThicknessCM || s.ThicknessCM > l.MaxThicknessCM {
			return entity.Configuration{}, invalid("banqueta %d: espesor %d fuera de [%d, %d]", i+1, s.ThicknessCM, l.MinThicknessCM, l.MaxThicknessCM)
		}
		grade := entity.FoamGrade(s.FoamGrade)
		if !slices.Contains(entity.FoamGrades, grade) {
			return entity.Configuration{}, invalid("banqueta %d: tipo de espuma %q desconocido", i+1, s.FoamGrade)
		}
		cfg.SeatingSections = append(cfg.SeatingSections, entity.SeatingSection{
			LengthCM:    s.LengthCM,
			WidthCM:     s.WidthCM,
			ThicknessCM: s.ThicknessCM,
			FoamGrade:   grade,
			IsCorner:    s.IsCorner,
		})
	}

	for i, b := range in.Backrests {
		if b.LengthCM < l.MinLengthCM || b.LengthCM > l.MaxLengthCM {
			return entity.Configuration{}, invalid("respaldo %d: largo %d fuera de [%d, %d]", i+1, b.LengthCM, l.MinLengthCM, l.MaxLengthCM)
		}
		pos := entity.BackrestPosition(b.Position)
		switch pos {
		case "", entity.BackrestLeft, entity.BackrestBottom, entity.BackrestRight:
		default:
			return entity.Configuration{}, invalid("respaldo %d: posición %q desconocida", i+1, b.Position)
		}
		cfg.Backrests = append(cfg.Backrests, entity.Backrest{LengthCM: b.LengthCM, Position: pos})
	}

	for key, qty := range in.Cushions {
		if qty < 0 || qty > l.MaxCushionsPerKind {
			return entity.Configuration{}, invalid("cojines %q: cantidad %d fuera de [0, %d]", key, qty, l.MaxCushionsPerKind)
		}
		kind := entity.ParseCushionKind(key)
		cfg.Cushions[kind] += qty
		if cfg.Cushions[kind] > l.MaxCushionsPerKind {
			return entity.Configuration{}, invalid("cojines %s: cantidad acumulada %d supera %d", kind, cfg.Cushions[kind], l.MaxCushionsPerKind)
		}
	}

	for key, qty := range in.Accessories {
		kind := entity.AccessoryKind(key)
		limit, ok := l.MaxAccessories[kind]
		if !ok {
			limit = l.MaxCushionsPerKind
		}
		if qty < 0 || qty > limit {
			return entity.Configuration{}, invalid("accesorio %q: cantidad %d fuera de [0, %d]", key, qty, limit)
		}
		cfg.Accessories[kind] = qty
	}

	return cfg, nil
}
