// Package money formatea importes en euros según el idioma configurado.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime importes con separadores locales. Seguro para uso concurrente.
type Formatter struct {
	p *message.Printer
}

// NewFormatter crea el formateador; una etiqueta inválida cae a francés.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format devuelve el importe con 2 decimales y el símbolo del euro. Ej. (en): "1,328.00 €".
// La conversión a float64 solo se usa para presentación, nunca para cálculo.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.p.Sprintf("%v €", number.Decimal(v, number.Scale(2)))
}

// Percent devuelve un porcentaje con 1 decimal. Ej. (en): "50.4 %".
func (f *Formatter) Percent(pct decimal.Decimal) string {
	v, _ := pct.Round(1).Float64()
	return f.p.Sprintf("%v %%", number.Decimal(v, number.Scale(1)))
}
