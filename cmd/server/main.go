package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/HarshChauhan111/stream-sync-lite/internal/api"
	"github.com/HarshChauhan111/stream-sync-lite/internal/config"
	"github.com/HarshChauhan111/stream-sync-lite/internal/events"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
	"github.com/HarshChauhan111/stream-sync-lite/internal/s3"
	"github.com/HarshChauhan111/stream-sync-lite/internal/service"
	"github.com/HarshChauhan111/stream-sync-lite/internal/token"
	"github.com/HarshChauhan111/stream-sync-lite/internal/tracing"
	_ "github.com/HarshChauhan111/stream-sync-lite/migrations"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalLogger("stream-sync-server", cfg.IsProduction())

	shutdownTracer, err := tracing.InitTracerProvider(context.Background(), "stream-sync-server", cfg.OTELExporterEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations(cfg)
		return
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Successfully connected to the database.")

	publisher, err := events.NewNatsPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	presigner, err := s3.NewFilePresigner(context.Background(), cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3 presigner: %v", err)
	}

	issuer := token.NewIssuer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)

	userRepo := repository.NewPostgresUserRepository(db)
	videoRepo := repository.NewPostgresVideoRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)
	deviceTokenRepo := repository.NewPostgresDeviceTokenRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)

	authService := service.NewAuthService(userRepo, deviceTokenRepo, issuer)
	videoService := service.NewVideoService(videoRepo, progressRepo)
	notificationService := service.NewNotificationService(notificationRepo, publisher)
	pushService := service.NewPushService(deviceTokenRepo, publisher)

	production := cfg.IsProduction()
	authHandler := api.NewAuthHandler(authService, production)
	videoHandler := api.NewVideoHandler(videoService, presigner, production)
	notificationHandler := api.NewNotificationHandler(notificationService, production)
	pushHandler := api.NewPushHandler(pushService, production)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	root := app.Group("/api")

	root.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Server is running"})
	})

	authRoutes := root.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Get("/me", api.AuthMiddleware(issuer), authHandler.Me)

	videoRoutes := root.Group("/videos")
	videoRoutes.Get("/", api.OptionalAuthMiddleware(issuer), videoHandler.List)
	videoRoutes.Get("/favorites", api.AuthMiddleware(issuer), videoHandler.Favorites)
	videoRoutes.Get("/upload-url", api.AuthMiddleware(issuer), api.RequireAdmin(), videoHandler.UploadURL)
	videoRoutes.Post("/", api.AuthMiddleware(issuer), api.RequireAdmin(), videoHandler.Create)
	videoRoutes.Get("/:id", api.OptionalAuthMiddleware(issuer), videoHandler.Get)
	videoRoutes.Post("/:id/progress", api.AuthMiddleware(issuer), videoHandler.SaveProgress)
	videoRoutes.Post("/:id/favorite", api.AuthMiddleware(issuer), videoHandler.ToggleFavorite)

	notificationRoutes := root.Group("/notifications")
	notificationRoutes.Use(api.AuthMiddleware(issuer))
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Post("/test", notificationHandler.SendTest)
	notificationRoutes.Post("/mark-all-read", notificationHandler.MarkAllRead)
	notificationRoutes.Post("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.Delete("/:id", notificationHandler.Delete)
	notificationRoutes.Post("/", api.RequireAdmin(), notificationHandler.Create)

	pushRoutes := root.Group("/push")
	pushRoutes.Use(api.AuthMiddleware(issuer))
	pushRoutes.Post("/register", pushHandler.Register)
	pushRoutes.Delete("/unregister", pushHandler.Unregister)
	pushRoutes.Post("/send", api.RequireAdmin(), pushHandler.Send)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Endpoint not found",
		})
	})

	log.Printf("Listening stream-sync-server on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func runMigrations(cfg config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
