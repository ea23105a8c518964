package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"stash/internal/config"
	"stash/internal/handlers"
	"stash/internal/middleware"
	"stash/internal/models"
	"stash/internal/repositories"
	"stash/internal/services"
	"stash/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Setup Error] %v", err)
	}

	// --- Datastore ---
	db, err := repositories.Open(cfg)
	if err != nil {
		log.Fatalf("[Setup Error] %v", err)
	}
	prefix := repositories.PartitionPrefix(cfg)
	if err := repositories.Migrate(db, prefix); err != nil {
		log.Fatalf("[Setup Error] %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("No RabbitMQ URL configured; event publishing disabled")
	}

	// --- Repositories ---
	stores := make(map[string]repositories.Store, len(models.Categories()))
	for _, cat := range models.Categories() {
		stores[cat.Plural] = repositories.NewGormStore(db, cat, prefix)
	}
	apiKeyRepo := repositories.NewGormApiKeyRepository(db, prefix)
	logRepo := repositories.NewGormLogRepository(db, prefix)

	seedApiKey(cfg, apiKeyRepo)

	// --- Services ---
	logService := services.NewLogService(logRepo, mqClient)
	cascadeRunner := services.NewCascadeRunner(stores, logService, mqClient)
	taggedService := services.NewTaggedService(stores)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// The request logger wraps auth so rejected requests are logged too.
	apiV1 := app.Group("/api/v1",
		middleware.RequestLogger(logService),
		middleware.ApiKeyRequired(apiKeyRepo, cfg),
	)

	for _, cat := range models.Categories() {
		service := services.NewCategoryService(cat, stores[cat.Plural], stores[models.TagCategory.Plural], cascadeRunner, mqClient)
		handlers.NewCategoryHandler(service).RegisterRoutes(apiV1)
	}
	handlers.NewLogHandler(logService).RegisterRoutes(apiV1)
	handlers.NewTaggedHandler(taggedService).RegisterRoutes(apiV1)

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedApiKey inserts the configured bootstrap key when the api_keys
// partition is empty, so a fresh install can authorize its first request.
func seedApiKey(cfg config.Config, repo repositories.ApiKeyRepository) {
	if cfg.BootstrapKey == "" {
		return
	}
	count, err := repo.Count()
	if err != nil {
		log.Printf("Failed to count API keys: %v", err)
		return
	}
	if count > 0 {
		return
	}
	parts := strings.SplitN(cfg.BootstrapKey, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		log.Printf("Ignoring bootstrap_key: expected the form 'key:user'")
		return
	}
	if err := repo.Create(&models.ApiKey{Key: parts[0], User: parts[1]}); err != nil {
		log.Printf("Failed to seed bootstrap API key: %v", err)
		return
	}
	log.Printf("Seeded bootstrap API key for user %s", parts[1])
}
