// Package app wires configuration, storage, services, and transport together
// and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/derdiedas/backend/internal/adapter/sqlite"
	favoriterepo "github.com/derdiedas/backend/internal/adapter/sqlite/favorite"
	wordrepo "github.com/derdiedas/backend/internal/adapter/sqlite/word"
	"github.com/derdiedas/backend/internal/config"
	"github.com/derdiedas/backend/internal/provider/llm/openai"
	"github.com/derdiedas/backend/internal/service/analyze"
	"github.com/derdiedas/backend/internal/service/declension"
	"github.com/derdiedas/backend/internal/service/dictionary"
	"github.com/derdiedas/backend/internal/service/favorites"
	"github.com/derdiedas/backend/internal/transport/middleware"
	"github.com/derdiedas/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// dictionary database, builds the service graph, and serves HTTP until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := openai.New(cfg.LLM.APIKey, cfg.LLM.Model,
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithTimeout(cfg.LLM.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create llm provider: %w", err)
	}

	words := wordrepo.New(db)
	favRepo := favoriterepo.New(db)

	dictionarySvc := dictionary.NewService(logger, words)
	analyzeSvc := analyze.NewService(logger, provider, dictionarySvc, cfg.Analyze.MaxTextLength, cfg.LLM.MaxTokens)
	declensionSvc := declension.NewService(logger, provider, cfg.LLM.MaxTokens)
	favoritesSvc := favorites.NewService(logger, favRepo)

	router := rest.NewRouter(rest.Handlers{
		Analyze:    rest.NewAnalyzeHandler(logger, analyzeSvc),
		Declension: rest.NewDeclensionHandler(logger, declensionSvc),
		Dictionary: rest.NewDictionaryHandler(logger, dictionarySvc),
		Favorites:  rest.NewFavoritesHandler(logger, favoritesSvc),
		Health:     rest.NewHealthHandler(db, BuildVersion()),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}

	handler := middleware.Chain(mws...)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
