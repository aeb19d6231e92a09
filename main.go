// main.go
//
// Word ladder HTTP server.
// Startup: config → log level → word list → graph → SQLite (+ migrations) → routes.
// The server stops cleanly on SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/assets"
	"github.com/robalobadob/wordladder/internal/config"
	"github.com/robalobadob/wordladder/internal/db"
	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/httpserver"
	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/store"
	"github.com/robalobadob/wordladder/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	list, err := words.Load(words.Options{Path: cfg.WordsFile, MinLen: cfg.WordMinLen, MaxLen: cfg.WordMaxLen})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	t0 := time.Now()
	graph := ladder.Build(list)
	log.Info().
		Int("words", graph.Len()).
		Int("edges", graph.EdgeCount()).
		Dur("took", time.Since(t0)).
		Str("source", sourceName(cfg.WordsFile)).
		Msg("word graph built")

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer sqlDB.Close()
	if err := db.Migrate(ctx, sqlDB, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	games := store.NewMemoryStore()
	go pruneGames(ctx, games, cfg.GameTTL())

	srv := httpserver.New(cfg, game.NewEngine(graph), games, sqlDB)
	log.Info().Str("port", cfg.Port).Str("strategy", string(cfg.Strategy())).Msg("starting wordladder server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// pruneGames drops in-memory games older than ttl until ctx is done.
func pruneGames(ctx context.Context, games store.Store, ttl time.Duration) {
	tick := time.NewTicker(time.Hour)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			n, err := games.Prune(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("prune games")
				continue
			}
			if n > 0 {
				log.Debug().Int("games", n).Msg("pruned games")
			}
		}
	}
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
