package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/canape-quote/internal/domain"
)

// FoamGrade clasificación de densidad / resiliencia de la espuma.
type FoamGrade string

const (
	FoamD25  FoamGrade = "D25"  // baja densidad 25
	FoamD30  FoamGrade = "D30"  // baja densidad 30
	FoamHR35 FoamGrade = "HR35" // alta resiliencia 35
	FoamHR45 FoamGrade = "HR45" // alta resiliencia 45
)

// FoamGrades lista los grados conocidos en orden de catálogo.
var FoamGrades = []FoamGrade{FoamD25, FoamD30, FoamHR35, FoamHR45}

// SeatingSection representa una banqueta (módulo recto o de esquina).
// Los rangos (largo 50–300, ancho 50–150, espesor 10–40) los valida el productor, no el motor.
type SeatingSection struct {
	LengthCM    int
	WidthCM     int
	ThicknessCM int
	FoamGrade   FoamGrade
	IsCorner    bool
}

// BackrestPosition ubicación del respaldo; solo afecta la etiqueta de la línea.
type BackrestPosition string

const (
	BackrestLeft   BackrestPosition = "left"
	BackrestBottom BackrestPosition = "bottom"
	BackrestRight  BackrestPosition = "right"
)

// Backrest respaldo del canapé.
type Backrest struct {
	LengthCM int
	Position BackrestPosition // opcional
}

// Armrests indica qué apoyabrazos están presentes.
type Armrests struct {
	Left  bool
	Right bool
}

// Count número de apoyabrazos presentes (0, 1 o 2).
func (a Armrests) Count() int {
	n := 0
	if a.Left {
		n++
	}
	if a.Right {
		n++
	}
	return n
}

// ── Cojines ───────────────────────────────────────────────────────────────────

// CushionVariant discrimina el tipo de cojín.
type CushionVariant int

const (
	CushionUnknown CushionVariant = iota
	CushionSized
	CushionValise
)

// ValiseTag variantes del cojín "valise"; todas tienen el mismo precio.
type ValiseTag string

const (
	ValiseStandard   ValiseTag = "valise"
	ValiseLarge      ValiseTag = "valise_g"
	ValiseSmall      ValiseTag = "valise_p"
	ValiseSmallLarge ValiseTag = "valise_pg"
)

// Known indica si la etiqueta corresponde a una variante del catálogo.
func (t ValiseTag) Known() bool {
	switch t {
	case ValiseStandard, ValiseLarge, ValiseSmall, ValiseSmallLarge:
		return true
	}
	return false
}

// CushionKind es una variante etiquetada: cojín por tamaño (65/80/90 cm), cojín valise o desconocido.
// Es comparable, por lo que sirve como clave de mapa en Configuration.Cushions.
type CushionKind struct {
	Variant CushionVariant
	SizeCM  int       // solo CushionSized
	Valise  ValiseTag // solo CushionValise
	Raw     string    // solo CushionUnknown: clave original recibida
}

// SizedCushion construye un cojín por tamaño.
func SizedCushion(cm int) CushionKind {
	return CushionKind{Variant: CushionSized, SizeCM: cm}
}

// ValiseCushion construye un cojín valise; una etiqueta fuera de catálogo produce un cojín desconocido.
func ValiseCushion(tag ValiseTag) CushionKind {
	if !tag.Known() {
		return CushionKind{Variant: CushionUnknown, Raw: string(tag)}
	}
	return CushionKind{Variant: CushionValise, Valise: tag}
}

// ParseCushionKind interpreta la clave de entrada: "65", "80", "90", "valise", "valise_g", ...
// La clave debe coincidir exactamente ("065", " 65" o "VALISE" no son claves del catálogo).
// Nunca falla: lo que no se reconoce queda como CushionUnknown.
func ParseCushionKind(key string) CushionKind {
	if n, err := strconv.Atoi(key); err == nil && strconv.Itoa(n) == key {
		return SizedCushion(n)
	}
	if tag := ValiseTag(key); tag.Known() {
		return ValiseCushion(tag)
	}
	return CushionKind{Variant: CushionUnknown, Raw: key}
}

// LooksLikeValise indica si la clave menciona "valise" aunque no esté en el catálogo.
func (k CushionKind) LooksLikeValise() bool {
	if k.Variant == CushionValise {
		return true
	}
	return k.Variant == CushionUnknown && strings.Contains(strings.ToLower(k.Raw), "valise")
}

// String devuelve la clave en formato de entrada.
func (k CushionKind) String() string {
	switch k.Variant {
	case CushionSized:
		return strconv.Itoa(k.SizeCM)
	case CushionValise:
		return string(k.Valise)
	default:
		return k.Raw
	}
}

// ── Accesorios ────────────────────────────────────────────────────────────────

// AccessoryKind tipo de accesorio.
type AccessoryKind string

const (
	AccessoryDecorativeCushion AccessoryKind = "decorative_cushion"
	AccessoryBolster           AccessoryKind = "bolster"
	AccessoryMattressTopper    AccessoryKind = "mattress_topper"
)

// Accessories lista los accesorios del catálogo en orden de presentación.
var Accessories = []AccessoryKind{AccessoryDecorativeCushion, AccessoryBolster, AccessoryMattressTopper}

// ── Configuración ─────────────────────────────────────────────────────────────

// Configuration descripción completa de un canapé a cotizar. Se construye por petición y no se muta.
type Configuration struct {
	SeatingSections []SeatingSection
	Backrests       []Backrest
	Armrests        Armrests
	Cushions        map[CushionKind]int
	Accessories     map[AccessoryKind]int
}

// Validate rechaza formas estructuralmente inválidas (cantidades negativas, dimensiones no positivas).
// No aplica los rangos comerciales: eso es responsabilidad del productor de la configuración.
func (c Configuration) Validate() error {
	for i, s := range c.SeatingSections {
		if s.LengthCM <= 0 || s.WidthCM <= 0 || s.ThicknessCM <= 0 {
			return fmt.Errorf("%w: banqueta %d con dimensiones %dx%dx%d",
				domain.ErrInvalidConfiguration, i+1, s.LengthCM, s.WidthCM, s.ThicknessCM)
		}
	}
	for i, b := range c.Backrests {
		if b.LengthCM <= 0 {
			return fmt.Errorf("%w: respaldo %d con largo %d", domain.ErrInvalidConfiguration, i+1, b.LengthCM)
		}
	}
	for k, q := range c.Cushions {
		if q < 0 {
			return fmt.Errorf("%w: cantidad negativa de cojines %q (%d)", domain.ErrInvalidConfiguration, k.String(), q)
		}
	}
	for k, q := range c.Accessories {
		if q < 0 {
			return fmt.Errorf("%w: cantidad negativa de accesorio %q (%d)", domain.ErrInvalidConfiguration, k, q)
		}
	}
	return nil
}
