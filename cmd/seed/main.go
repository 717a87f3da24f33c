// Command seed loads the default users, catalog and recipes into an empty
// database. With -recetas it only rebuilds the standard recipes.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"salonpos/internal/analytics"
	"salonpos/internal/config"
	"salonpos/internal/infra"
	"salonpos/internal/repository"
	"salonpos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	recetas := flag.Bool("recetas", false, "rebuild the standard recipes instead of seeding")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *recetas {
		costos := analytics.NewCostTable(cfg.ReposicionManicura, cfg.ReposicionPedicura)
		svc := service.NewRecetaService(
			repository.NewRecetaRepository(db),
			repository.NewCatalogoRepository(db),
			repository.NewInsumoRepository(db),
			costos, nil,
		)
		resp, err := svc.ReconstruirEstandar(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("recipe rebuild failed")
		}
		log.Info().Interface("resultado", resp).Msg("standard recipes rebuilt")
		return
	}

	seeded, err := service.NewSeedService(db).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	if !seeded {
		log.Info().Msg("database already seeded, nothing to do")
		return
	}
	log.Info().Msg("seed complete")
}
