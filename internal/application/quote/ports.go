package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/canape-quote/internal/domain/entity"
)

// QuoteDocument datos que necesita el generador para imprimir una cotización.
type QuoteDocument struct {
	Reference      string // UUID de la cotización impresa
	IssuedAt       time.Time
	ValidUntil     time.Time
	ShopName       string
	CustomerName   string
	Lines          []entity.QuoteLine
	TotalPriceIncl decimal.Decimal
	TotalPriceExcl decimal.Decimal // TotalPriceIncl / 1.2
	TaxAmount      decimal.Decimal // TotalPriceIncl − TotalPriceExcl
}

// QuotePDFGenerator genera la representación imprimible de una cotización.
// Lo implementa infrastructure/pdf.MarotoQuotePDFGenerator.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, doc QuoteDocument) ([]byte, error)
}
