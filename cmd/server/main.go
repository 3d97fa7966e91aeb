package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"

	"github.com/localnerve/scenedir/internal/analytics"
	"github.com/localnerve/scenedir/internal/blob"
	"github.com/localnerve/scenedir/internal/config"
	"github.com/localnerve/scenedir/internal/handlers"
	"github.com/localnerve/scenedir/internal/health"
	"github.com/localnerve/scenedir/internal/middleware"
	"github.com/localnerve/scenedir/internal/scene"
	"github.com/localnerve/scenedir/internal/store"
	"github.com/localnerve/scenedir/internal/types"
	"github.com/localnerve/scenedir/internal/users"

	_ "github.com/localnerve/scenedir/docs/api" // Swagger docs
)

// @title SceneDir API
// @version 1.0.0
// @description Go Fiber scene directory and view analytics service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/scenedir
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_id

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Upstream clients
	storeClient := store.NewClient(cfg.StoreURL, cfg.UpstreamTimeout)
	authClient := store.NewAuthClient(cfg.IdentityURL, cfg.WebAPIKey, cfg.UpstreamTimeout)

	blobStore, err := blob.New(context.Background(), blob.Options{
		Bucket:        cfg.BlobBucket,
		Region:        cfg.BlobRegion,
		Endpoint:      cfg.BlobEndpoint,
		PublicBaseURL: cfg.BlobPublicBaseURL,
		AccessKey:     cfg.BlobAccessKey,
		SecretKey:     cfg.BlobSecretKey,
		PresignTTL:    cfg.PresignTTL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Services
	sceneService := scene.NewService(storeClient)
	analyticsService := analytics.NewService(storeClient, cfg.WindowMonths, cfg.ForecastHorizon, cfg.TopScenes)
	userService := users.NewService(storeClient, authClient)

	// Session store
	sessions := session.New(session.Config{
		Expiration:     cfg.SessionIdle,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("scenedir")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := health.Check(cfg)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	authHandler := &handlers.AuthHandler{Auth: authClient, Users: userService, Sessions: sessions}
	sceneHandler := &handlers.SceneHandler{Scenes: sceneService, Blobs: blobStore, MainBuilding: cfg.MainBuilding}
	analyticsHandler := &handlers.AnalyticsHandler{Analytics: analyticsService, Scenes: sceneService}
	userHandler := &handlers.UserHandler{Users: userService}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Scene routes (all require a signed-in session)
	scenes := api.Group("/scenes", middleware.RequireSession(sessions))
	scenes.Get("/", sceneHandler.ListScenes)
	scenes.Get("/counts", sceneHandler.SceneCounts)
	scenes.Get("/download-url", sceneHandler.DownloadURL)
	scenes.Post("/metadata", sceneHandler.UpdateMetadata)
	scenes.Post("/image", sceneHandler.ReplaceImage)

	// Analytics routes
	stats := api.Group("/analytics", middleware.RequireSession(sessions))
	stats.Get("/performance", analyticsHandler.Performance)
	stats.Get("/forecast", analyticsHandler.Forecast)
	stats.Get("/top-scenes", analyticsHandler.TopScenes)
	stats.Get("/random-pictures", analyticsHandler.RandomPictures)

	// Profile routes
	profile := api.Group("/profile", middleware.RequireSession(sessions))
	profile.Get("/", userHandler.GetProfile)
	profile.Patch("/", userHandler.EditProfile)

	// Account directory routes (admin only)
	accounts := api.Group("/users", middleware.RequireAdmin(sessions))
	accounts.Get("/", userHandler.ListAccounts)
	accounts.Get("/role-counts", userHandler.RoleCounts)
	accounts.Post("/", userHandler.CreateAccount)
	accounts.Delete("/:uid", userHandler.DeleteAccount)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a custom error with a type
	var custom *types.CustomError
	if errors.As(err, &custom) {
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
