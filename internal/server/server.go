package server

import (
	"errors"
	"log"
	"path/filepath"

	"etalase/internal/handlers"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options configures the HTTP surface.
type Options struct {
	StaticDir      string
	RequestLogging bool
}

// Services bundles what the API routes delegate to.
type Services struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Settings *services.SettingService
}

// New builds the Fiber app: health check, JSON API under /api and the static
// frontend as a fallback for every other GET.
func New(svc Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	if opts.RequestLogging {
		app.Use(logger.New())
	}

	// Liveness only: must answer without touching the database.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(api)
	handlers.NewSettingHandler(svc.Settings).RegisterRoutes(api)

	if opts.StaticDir != "" {
		index := filepath.Join(opts.StaticDir, "index.html")
		app.Static("/", opts.StaticDir)
		app.Get("*", func(c *fiber.Ctx) error {
			return c.SendFile(index)
		})
	}

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
