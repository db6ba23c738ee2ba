// main.go
//
// Entry point for the fan module host.
// Loads .env, parses config, opens the history DB, and serves HTTP.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/notthefan/assets"
	"github.com/robalobadob/notthefan/internal/config"
	"github.com/robalobadob/notthefan/internal/history"
	"github.com/robalobadob/notthefan/internal/httpserver"
	"github.com/robalobadob/notthefan/internal/store"
	"github.com/robalobadob/notthefan/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	tbl, err := words.Load(cfg.WordsTableFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word table")
	}
	rows, entries := tbl.Stats()
	log.Info().Int("rows", rows).Int("entries", entries).Msg("word table ready")

	db, err := history.Open(cfg.DBDriver, cfg.DBPath, assets.Migrations())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}
	defer db.Close()

	srv, err := httpserver.New(cfg, tbl, store.NewMemoryStore(), history.NewStore(db))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	log.Info().Str("port", cfg.Port).Int("stages", cfg.Stages).Str("finalRow", cfg.FinalRow).Msg("starting fan module host")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
