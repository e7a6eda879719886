// Package pricing implementa el motor de tarificación de canapés a medida:
// consultas de precio (TTC) y costo (HT) por tipo de pieza, la fórmula de espuma + tela,
// el agregador de la cotización completa y el generador de líneas imprimibles.
//
// El motor es puro: no guarda estado mutable entre llamadas y puede usarse desde
// varias goroutines sin coordinación.
package pricing

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

// SupportKind tipo de estructura (soporte) con precio fijo de venta.
type SupportKind string

const (
	SupportSeatStraight SupportKind = "seat_section_straight"
	SupportSeatCorner   SupportKind = "seat_section_corner"
	SupportArmrest      SupportKind = "armrest"
	SupportBackrest     SupportKind = "backrest"
)

// LengthTier costo que depende de si el largo supera un umbral (Short si largo <= ShortMaxCM).
type LengthTier struct {
	ShortMaxCM int
	Short      decimal.Decimal
	Long       decimal.Decimal
}

// For devuelve el importe del tramo correspondiente al largo.
func (t LengthTier) For(lengthCM int) decimal.Decimal {
	if lengthCM <= t.ShortMaxCM {
		return t.Short
	}
	return t.Long
}

// Catalog reúne todas las tablas de precios y costos. Se inyecta en NewEngine y se copia ahí.
type Catalog struct {
	// Cojines: por tamaño (cm) y valise (todas las variantes al mismo precio).
	CushionPrice map[int]decimal.Decimal
	CushionCost  map[int]decimal.Decimal
	ValisePrice  decimal.Decimal
	ValiseCost   decimal.Decimal

	SupportPrice map[SupportKind]decimal.Decimal

	AccessoryPrice  map[entity.AccessoryKind]decimal.Decimal
	AccessoryCost   map[entity.AccessoryKind]decimal.Decimal
	AccessoryLabels map[entity.AccessoryKind]string

	// Coeficientes de espuma por m³. Un grado desconocido usa el de FoamD25.
	FoamPriceCoef map[entity.FoamGrade]decimal.Decimal
	FoamCostCoef  map[entity.FoamGrade]decimal.Decimal

	// Tela por metro lineal. FabricWidthLimitCM es el umbral de "ancho + 2×espesor".
	FabricWidthLimitCM   int
	FabricPriceNarrow    decimal.Decimal
	FabricPriceWide      decimal.Decimal
	FabricCostNarrow     decimal.Decimal
	FabricCostWide       decimal.Decimal
	FabricCostSupplement decimal.Decimal

	CornerSeatSupportCost decimal.Decimal
	StraightSeatSupport   LengthTier
	BackrestSupport       LengthTier
	ArmrestCost           decimal.Decimal

	// RoundingAdjustment costo HT fijo que se suma una vez por cotización.
	RoundingAdjustment decimal.Decimal

	// TaxDivisor convierte el total TTC a su equivalente HT.
	TaxDivisor decimal.Decimal

	// PrecutFoamCost costo HT de planchas de espuma pre-cortadas, por formato "LxWxT".
	PrecutFoamCost map[string]map[entity.FoamGrade]decimal.Decimal
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultCatalog devuelve las tablas vigentes del taller.
func DefaultCatalog() Catalog {
	eight := d("8")
	return Catalog{
		CushionPrice: map[int]decimal.Decimal{65: d("35"), 80: d("44"), 90: d("48")},
		CushionCost:  map[int]decimal.Decimal{65: d("14"), 80: d("17"), 90: d("17.5")},
		ValisePrice:  d("70"),
		ValiseCost:   d("25"),

		SupportPrice: map[SupportKind]decimal.Decimal{
			SupportSeatStraight: d("250"),
			SupportSeatCorner:   d("250"),
			SupportArmrest:      d("225"),
			SupportBackrest:     d("250"),
		},

		AccessoryPrice: map[entity.AccessoryKind]decimal.Decimal{
			entity.AccessoryDecorativeCushion: d("15"),
			entity.AccessoryBolster:           d("30"),
			entity.AccessoryMattressTopper:    d("80"),
		},
		AccessoryCost: map[entity.AccessoryKind]decimal.Decimal{
			entity.AccessoryDecorativeCushion: d("9.5"),
			entity.AccessoryBolster:           d("11.6"),
			entity.AccessoryMattressTopper:    d("31"),
		},
		AccessoryLabels: map[entity.AccessoryKind]string{
			entity.AccessoryDecorativeCushion: "Decorative cushion",
			entity.AccessoryBolster:           "Bolster",
			entity.AccessoryMattressTopper:    "Mattress topper",
		},

		// 16 × número de densidad (HR35 y HR45 usan 37 y 47).
		FoamPriceCoef: map[entity.FoamGrade]decimal.Decimal{
			entity.FoamD25:  d("400"),
			entity.FoamD30:  d("480"),
			entity.FoamHR35: d("592"),
			entity.FoamHR45: d("752"),
		},
		FoamCostCoef: map[entity.FoamGrade]decimal.Decimal{
			entity.FoamD25:  d("157.5"),
			entity.FoamD30:  d("188"),
			entity.FoamHR35: d("192"),
			entity.FoamHR45: d("245"),
		},

		FabricWidthLimitCM:   140,
		FabricPriceNarrow:    d("74"),
		FabricPriceWide:      d("105"),
		FabricCostNarrow:     d("11.2"),
		FabricCostWide:       d("16.16"),
		FabricCostSupplement: d("15"),

		CornerSeatSupportCost: d("93").Add(eight.Mul(d("1.4"))),
		StraightSeatSupport: LengthTier{
			ShortMaxCM: 200,
			Short:      d("93").Add(eight.Mul(d("2.5"))),
			Long:       d("98.5").Add(d("22.5")),
		},
		BackrestSupport: LengthTier{
			ShortMaxCM: 200,
			Short:      d("120").Add(eight.Mul(d("4.4"))),
			Long:       d("132").Add(eight.Mul(d("5.5"))),
		},
		ArmrestCost: d("73"),

		RoundingAdjustment: d("6.05"),
		TaxDivisor:         d("1.2"),

		PrecutFoamCost: map[string]map[entity.FoamGrade]decimal.Decimal{
			"200x70x25": {
				entity.FoamD25: d("42.55"), entity.FoamD30: d("51"),
				entity.FoamHR35: d("65"), entity.FoamHR45: d("84"),
			},
			"200x80x25": {
				entity.FoamD25: d("63"), entity.FoamD30: d("75.20"),
				entity.FoamHR35: d("76.20"), entity.FoamHR45: d("98"),
			},
			"90x90x25": {
				entity.FoamD25: d("31.9"), entity.FoamD30: d("38.1"),
				entity.FoamHR35: d("38.9"), entity.FoamHR45: d("49.6"),
			},
			"100x100x25": {
				entity.FoamD25: d("39.3"), entity.FoamD30: d("47"),
				entity.FoamHR35: d("48"), entity.FoamHR45: d("61.20"),
			},
		},
	}
}

// clone copia los mapas para que el motor no comparta estado con quien construyó el catálogo.
func (c Catalog) clone() Catalog {
	out := c
	out.CushionPrice = maps.Clone(c.CushionPrice)
	out.CushionCost = maps.Clone(c.CushionCost)
	out.SupportPrice = maps.Clone(c.SupportPrice)
	out.AccessoryPrice = maps.Clone(c.AccessoryPrice)
	out.AccessoryCost = maps.Clone(c.AccessoryCost)
	out.AccessoryLabels = maps.Clone(c.AccessoryLabels)
	out.FoamPriceCoef = maps.Clone(c.FoamPriceCoef)
	out.FoamCostCoef = maps.Clone(c.FoamCostCoef)
	out.PrecutFoamCost = make(map[string]map[entity.FoamGrade]decimal.Decimal, len(c.PrecutFoamCost))
	for format, grades := range c.PrecutFoamCost {
		out.PrecutFoamCost[format] = maps.Clone(grades)
	}
	return out
}
