package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"vcardqr/config"
	v1 "vcardqr/internal/controller/restapi/v1"
	"vcardqr/internal/usecase"
	"vcardqr/pkg/logger"
)

// @title vCard QR
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, card usecase.CardUseCase, user usecase.UserUseCase, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewRoutes(apiV1Group, card, user, l)
	}
}
