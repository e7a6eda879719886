package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/pkg/jwt"
	"github.com/jhoicas/canape-quote/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuoteUC   *quote.QuoteUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.Log)

	// Catálogo y cotización (público)
	api.Get("/catalog", quoteHandler.Catalog)
	quotes := api.Group("/quotes")
	quotes.Post("/", quoteHandler.Create)
	quotes.Post("/pdf", quoteHandler.PDF)

	// Márgenes (protegido: personal del taller)
	quotes.Post("/margin",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(jwt.RoleAdmin, jwt.RoleVendedor),
		quoteHandler.Margin,
	)
}
