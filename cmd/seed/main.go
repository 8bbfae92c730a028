package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/thesrcielos/HeroHigherLower/internal/config"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/pkg/db"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "seed").Logger()

	path := flag.String("file", "heroes.json", "path to the hero catalog JSON array")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading config")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *path).Msg("error reading catalog")
	}
	var heroes []hero.Hero
	if err := json.Unmarshal(raw, &heroes); err != nil {
		logger.Fatal().Err(err).Str("file", *path).Msg("error decoding catalog")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := db.Init(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("error connecting to storage")
	}
	if err := db.DB.AutoMigrate(&hero.Hero{}); err != nil {
		logger.Fatal().Err(err).Msg("error migrating database")
	}

	repo := hero.NewCachedRepository(hero.NewHeroRepository(db.DB), db.Rdb, cfg.Redis.CacheTTL)
	n, err := hero.NewHeroService(repo).Seed(ctx, heroes)
	if err != nil {
		logger.Fatal().Err(err).Msg("error seeding heroes")
	}
	logger.Info().Int("rows", n).Str("file", *path).Msg("seed complete")
}
