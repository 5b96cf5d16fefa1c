package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/zakariamagdyz/memorize-api/internal/config"
	"github.com/zakariamagdyz/memorize-api/internal/database"
	"github.com/zakariamagdyz/memorize-api/internal/repository"
)

// Refresh tokens only leave the store through rotation, logout, or the
// reuse wipe; entries for clients that simply vanished stay behind. This
// job drops everything older than the refresh TTL.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokenRepo := repository.NewRefreshTokenRepository(db)
	cutoff := time.Now().Add(-cfg.RefreshTokenTTL)

	deleted, err := tokenRepo.DeleteCreatedBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("token cleanup completed: refresh_tokens=%d cutoff=%s", deleted, cutoff.Format(time.RFC3339))
}
