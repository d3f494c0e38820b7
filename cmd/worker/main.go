package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/HarshChauhan111/stream-sync-lite/internal/api"
	"github.com/HarshChauhan111/stream-sync-lite/internal/config"
	"github.com/HarshChauhan111/stream-sync-lite/internal/repository"
	"github.com/HarshChauhan111/stream-sync-lite/internal/worker"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalLogger("stream-sync-push-worker", cfg.IsProduction())

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tokenRepo := repository.NewPostgresDeviceTokenRepository(db)

	w, err := worker.Start(cfg, tokenRepo)
	if err != nil {
		log.Fatalf("Failed to start push worker: %v", err)
	}
	defer w.Close()

	log.Println("Push worker is running. Waiting for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down push worker...")
}
