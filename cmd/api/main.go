package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"campus/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load .env / environment config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	ctx := context.Background()
	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		log.Fatalf("bootstrap api: %v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
