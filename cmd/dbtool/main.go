package main

import (
	"context"
	"log"
	"os"
	"strings"
	"stroke-risk-service/internal/adapters/cache"
	"stroke-risk-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool prepares the shared PostgreSQL geocode cache ahead of deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing geocode cache schema...")
	if err := cache.InitSchema(context.Background(), conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
