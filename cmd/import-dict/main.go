// Command import-dict loads a JSON dictionary dataset into the cache.
//
// Supported formats: an array of {lemma, gender, translation_zh,
// translation_en} records, or an object keyed by lemma whose values carry
// gender plus translation_zh/translation_en, translation (Chinese), or en
// (English) fields. Entries without a lemma or a valid gender are skipped.
//
// Flags:
//
//	--file  path to the dataset (required)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/derdiedas/backend/internal/adapter/sqlite"
	wordrepo "github.com/derdiedas/backend/internal/adapter/sqlite/word"
	"github.com/derdiedas/backend/internal/app"
	"github.com/derdiedas/backend/internal/config"
	"github.com/derdiedas/backend/internal/service/dictionary"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON dataset")
	flag.Parse()

	if *fileFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx := context.Background()

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read dataset", slog.Any("error", err))
		os.Exit(1)
	}

	svc := dictionary.NewService(logger, wordrepo.New(db))

	imported, err := svc.ImportJSON(ctx, data)
	if err != nil {
		logger.Error("import dataset", slog.Any("error", err))
		os.Exit(1)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		logger.Error("read stats", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("imported %d words (total %d)\n", imported, stats.TotalWords)
	for gender, count := range stats.ByGender {
		fmt.Printf("  %s: %d\n", gender, count)
	}
}
