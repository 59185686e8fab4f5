package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/snippetd/snippetd/internal/app"
)

func main() {
	// Best effort: a missing .env file is fine, env vars win either way.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ snippetd failed to start: %v", err)
	}
}
