package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/orsoie/gallery-service/config"
	v1 "github.com/orsoie/gallery-service/internal/controller/restapi/v1"
	"github.com/orsoie/gallery-service/internal/usecase"
	"github.com/orsoie/gallery-service/pkg/logger"
)

// @title Gallery delivery service
// @version 1.0.0
// @host localhost:8080
// @BasePath /api
func NewRouter(app *fiber.App, cfg *config.Config, gallery usecase.GalleryUseCase, guests usecase.GuestUseCase, l logger.Interface) {
	// The SPA is served from a different origin; every endpoint answers
	// with permissive CORS and OPTIONS preflights short-circuit here.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiGroup := app.Group("/api")
	{
		v1.NewGalleryRoutes(apiGroup, gallery, l)
		v1.NewGuestRoutes(apiGroup, guests, l)
	}
}
