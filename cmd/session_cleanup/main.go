package main

import (
	"context"
	"log"
	"os"
	"time"

	"b2bportal/internal/database"
	"b2bportal/internal/repository"
)

// Expired sessions are already rejected at lookup time; this job just keeps
// the tables from growing without bound. Run it from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	sessions, err := repository.NewSessionRepository(db).DeleteExpired(ctx, now)
	if err != nil {
		log.Fatalf("cleanup sessions failed: %v", err)
	}

	resets, err := repository.NewPasswordResetRepository(db).DeleteStale(ctx, now)
	if err != nil {
		log.Fatalf("cleanup password_resets failed: %v", err)
	}

	log.Printf("session cleanup completed: sessions=%d password_resets=%d", sessions, resets)
}
