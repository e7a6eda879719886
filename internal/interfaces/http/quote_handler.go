package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canape-quote/internal/application/dto"
	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/internal/domain"
	"github.com/jhoicas/canape-quote/pkg/logger"
)

// QuoteHandler expone el cotizador: resumen público, PDF y vista de márgenes (personal).
type QuoteHandler struct {
	uc  *quote.QuoteUseCase
	log *logger.Logger
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quote.QuoteUseCase, log *logger.Logger) *QuoteHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteHandler{uc: uc, log: log.Component("http")}
}

// Create godoc
// @Summary      Cotizar una configuración de canapé
// @Description  Devuelve el total TTC, el desglose de precio por categoría y las líneas del devis.
// @Description  No incluye costos ni márgenes.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConfigurationRequest  true  "Configuración del canapé"
// @Success      200   {object}  dto.QuoteSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.ConfigurationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Summary(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// PDF godoc
// @Summary      Descargar el devis en PDF
// @Description  Genera la versión imprimible de la cotización (A4) con referencia y fecha de validez.
// @Tags         quotes
// @Accept       json
// @Produce      application/pdf
// @Param        body  body      dto.ConfigurationRequest  true  "Configuración del canapé"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/quotes/pdf [post]
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	var in dto.ConfigurationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdfBytes, filename, err := h.uc.PDF(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// Margin godoc
// @Summary      Cotización interna con costos y beneficio
// @Description  Igual que /api/quotes más costo HT, beneficio HT, ratio y cuadre de líneas.
// @Description  Solo roles admin y vendedor.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConfigurationRequest  true  "Configuración del canapé"
// @Success      200   {object}  dto.QuoteMarginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/quotes/margin [post]
func (h *QuoteHandler) Margin(c *fiber.Ctx) error {
	var in dto.ConfigurationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Margin(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	h.log.Info().
		Str("user_id", GetUserID(c)).
		Str("profit_excl", res.ProfitExcl.StringFixed(2)).
		Msg("consulta de margen")
	return c.JSON(res)
}

// Catalog godoc
// @Summary      Tablas públicas de precios
// @Description  Grados de espuma, precios TTC de cojines, soportes y accesorios, formatos precortados y rangos del formulario.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *QuoteHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(h.uc.Catalog())
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *QuoteHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidConfiguration):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error al cotizar")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
