// Comando quote: cotiza una configuración desde la terminal y emite tokens para el personal.
//
// Uso:
//
//	quote [-config configuracion.json] [-pdf devis.pdf] [-json]
//	quote token -user ID -role admin|vendedor
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/internal/domain/pricing"
	infrapdf "github.com/jhoicas/canape-quote/internal/infrastructure/pdf"
	"github.com/jhoicas/canape-quote/pkg/config"
	"github.com/jhoicas/canape-quote/pkg/jwt"
	"github.com/jhoicas/canape-quote/pkg/logger"
	"github.com/jhoicas/canape-quote/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "quote-cli", Out: os.Stderr})

	if err := run(context.Background(), cfg, log, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("quote")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "token" {
		return runToken(cfg, args[1:], stdout)
	}
	return runQuote(ctx, cfg, log, args, stdin, stdout)
}

// ── token ─────────────────────────────────────────────────────────────────────

func runToken(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	user := fs.String("user", "", "identificador del usuario")
	role := fs.String("role", jwt.RoleVendedor, "rol: admin | vendedor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return errors.New("token: -user requerido")
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleVendedor {
		return fmt.Errorf("token: rol %q no permitido", *role)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	_, err = fmt.Fprintln(stdout, tok)
	return err
}

// ── quote ─────────────────────────────────────────────────────────────────────

func runQuote(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	configPath := fs.String("config", "", "archivo JSON con la configuración (por defecto stdin)")
	pdfPath := fs.String("pdf", "", "escribe el devis en PDF en esta ruta")
	asJSON := fs.Bool("json", false, "imprime la cotización interna en JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := readConfiguration(*configPath, stdin)
	if err != nil {
		return err
	}

	uc := quote.NewQuoteUseCase(
		pricing.NewDefaultEngine(),
		infrapdf.NewMarotoQuotePDFGenerator(cfg.Quote.Locale),
		log,
		quote.Options{ShopName: cfg.Quote.ShopName, ValidityDays: cfg.Quote.ValidityDays},
	)

	res, err := uc.Margin(ctx, in)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else if err := printQuote(stdout, money.NewFormatter(cfg.Quote.Locale), res); err != nil {
		return err
	}

	if *pdfPath != "" {
		b, _, err := uc.PDF(ctx, in)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*pdfPath, b, 0o644); err != nil {
			return fmt.Errorf("escribir PDF: %w", err)
		}
		log.Info().Str("path", *pdfPath).Int("bytes", len(b)).Msg("PDF escrito")
	}
	return nil
}

func readConfiguration(path string, stdin io.Reader) (dto.ConfigurationRequest, error) {
	var in dto.ConfigurationRequest
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("abrir configuración: %w", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("leer configuración: %w", err)
	}
	return in, nil
}

func printQuote(w io.Writer, f *money.Formatter, res *dto.QuoteMarginResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Qté\tDésignation\tP.U. TTC\tTotal TTC\t")
	for _, l := range res.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", l.Quantity, l.Label, f.Format(l.UnitPriceIncl), f.Format(l.LineTotalIncl))
	}
	fmt.Fprintln(tw, "\t\t\t\t")

	fmt.Fprintln(tw, "Catégorie\tPrix TTC\tPart\tCoût HT\t")
	cost := make(map[string]dto.CategoryAmountResponse, len(res.CostBreakdown))
	for _, c := range res.CostBreakdown {
		cost[c.Category] = c
	}
	for _, p := range res.PriceBreakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", p.Category, f.Format(p.Amount), f.Percent(p.SharePct), f.Format(cost[p.Category].Amount))
	}
	if adj, ok := cost["rounding_adjustment"]; ok {
		fmt.Fprintf(tw, "%s\t\t\t%s\t\n", adj.Category, f.Format(adj.Amount))
	}
	fmt.Fprintln(tw, "\t\t\t\t")

	fmt.Fprintf(tw, "Total TTC\t%s\t\t\t\n", f.Format(res.TotalPriceIncl))
	fmt.Fprintf(tw, "Total HT\t%s\t\t\t\n", f.Format(res.TotalPriceExcl))
	fmt.Fprintf(tw, "Coût HT\t%s\t\t\t\n", f.Format(res.TotalCostExcl))
	fmt.Fprintf(tw, "Marge HT\t%s\t%s\t\t\n", f.Format(res.ProfitExcl), f.Percent(res.ProfitRatio))

	if len(res.PrecutOptions) > 0 {
		fmt.Fprintln(tw, "\t\t\t\t")
		fmt.Fprintln(tw, "Assise\tPrédécoupe\tMousse\tCoût HT\t")
		for _, p := range res.PrecutOptions {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", p.Section, p.Format, p.FoamGrade, f.Format(p.CostExcl))
		}
	}
	return tw.Flush()
}
