// Command server runs the German text analysis API: streaming noun/article
// extraction, declension tables, the dictionary cache, and favorites.
//
// Configuration comes from a YAML file (CONFIG_PATH) overridden by
// environment variables; a .env file is loaded when present.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/derdiedas/backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
