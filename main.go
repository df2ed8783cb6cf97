package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"etalase/internal/config"
	"etalase/internal/database"
	"etalase/internal/repositories"
	"etalase/internal/server"
	"etalase/internal/services"
	"etalase/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	// The schema must exist before the server accepts any request.
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// --- Catalog events (optional) ---
	var events *services.Events
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		events = &services.Events{Publisher: mqClient, Exchange: cfg.RabbitMQ.Exchange}
	} else {
		log.Println("RABBITMQ_URL is not set. Catalog events are disabled.")
	}

	// --- Repositories and services ---
	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.Auth, events)
	productService := services.NewProductService(repositories.NewGORMProductRepository(db), events)
	settingService := services.NewSettingService(repositories.NewGORMSettingRepository(db))

	app := server.New(server.Services{
		Auth:     authService,
		Products: productService,
		Settings: settingService,
	}, server.Options{
		StaticDir:      cfg.StaticDir,
		RequestLogging: cfg.RequestLogging,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := serve(app, cfg.Addr(), quit)
	if serveErr != nil {
		log.Printf("%v", serveErr)
	} else {
		log.Println("Shutting down server...")
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}

	if serveErr != nil {
		os.Exit(1)
	}
	log.Println("Server gracefully stopped")
}

// serve runs app on addr until a signal arrives on quit or the listener
// fails. A nil return means shutdown was requested.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
		return nil
	}
}
