package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/internal/domain/pricing"
	apphttp "github.com/jhoicas/canape-quote/internal/interfaces/http"
	"github.com/jhoicas/canape-quote/pkg/logger"
)

type stubPDF struct{}

func (stubPDF) GenerateQuotePDF(_ context.Context, _ quote.QuoteDocument) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

const referenceBody = `{
	"seating_sections": [{"length_cm": 200, "width_cm": 80, "thickness_cm": 25, "foam_grade": "D25"}],
	"backrests": [{"length_cm": 200}],
	"armrests": {"left": true, "right": true},
	"cushions": {"65": 2}
}`

func buildQuoteApp() *fiber.App {
	uc := quote.NewQuoteUseCase(pricing.NewDefaultEngine(), stubPDF{}, logger.Nop(), quote.Options{
		ShopName:     "Atelier Test",
		ValidityDays: 30,
	})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{QuoteUC: uc, JWTSecret: testJWTSecret, Log: logger.Nop()})
	return app
}

func post(t *testing.T, app *fiber.App, path, body, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeMap decodifica el cuerpo como mapa genérico; los decimales llegan como string JSON.
func decodeMap(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&m))
	return m
}

func TestQuoteHandler_Create(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes", referenceBody, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp.Body)
	assert.Equal(t, "1328", body["total_price_incl"])
	assert.NotContains(t, body, "total_cost_excl", "la vista pública no expone costos")
	assert.NotContains(t, body, "profit_excl")
	assert.Len(t, body["lines"], 6)
}

func TestQuoteHandler_Create_CuerpoInvalido(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes", "{no es json", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "INVALID_BODY", e.Code)
}

func TestQuoteHandler_Create_FueraDeRango(t *testing.T) {
	app := buildQuoteApp()
	body := strings.Replace(referenceBody, `"length_cm": 200, "width_cm"`, `"length_cm": 400, "width_cm"`, 1)
	resp := post(t, app, "/api/quotes", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "VALIDATION", e.Code)
}

func TestQuoteHandler_PDF(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes/pdf", referenceBody, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `attachment; filename="devis_[0-9a-f]{8}\.pdf"`, resp.Header.Get("Content-Disposition"))
	b, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestQuoteHandler_Margin_RequiereToken(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes/margin", referenceBody, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuoteHandler_Margin_RolNoPermitido(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes/margin", referenceBody, tokenForRole(t, "cliente"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestQuoteHandler_Margin(t *testing.T) {
	app := buildQuoteApp()
	resp := post(t, app, "/api/quotes/margin", referenceBody, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp.Body)
	assert.Equal(t, "1328", body["total_price_incl"])
	assert.Equal(t, "548.65", body["total_cost_excl"])
	assert.Equal(t, "558.02", body["profit_excl"])
	assert.Equal(t, "50.4", body["profit_ratio"])
	assert.Equal(t, true, body["reconciled"])

	precut, ok := body["precut_options"].([]interface{})
	require.True(t, ok)
	require.Len(t, precut, 1)
	opt := precut[0].(map[string]interface{})
	assert.Equal(t, "200x80x25", opt["format"])
	assert.Equal(t, "63", opt["cost_excl"])
}

func TestQuoteHandler_Catalog(t *testing.T) {
	app := buildQuoteApp()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cat dto.CatalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cat))
	assert.Equal(t, []string{"D25", "D30", "HR35", "HR45"}, cat.FoamGrades)
	assert.Equal(t, "35", cat.CushionPrices["65"].String())
}
