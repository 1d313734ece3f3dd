// Command pokedexctl runs maintenance tasks against the configured database:
// schema migrations and CSV seeding.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/app"
	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/logger"
	"github.com/maxviazov/pokedex-service/internal/seed"
	"github.com/maxviazov/pokedex-service/internal/service"
)

func main() {
	cli := kingpin.New("pokedexctl", "Pokedex maintenance commands.")
	cli.HelpFlag.Short('h')
	configFile := cli.Flag("config", "Path to YAML config file").Short('c').Default("config.yaml").Envar("APP_CONFIG").String()
	envFiles := cli.Flag("env-file", "dotenv file to load before reading config (repeatable)").Strings()

	migrateCmd := cli.Command("migrate", "Manage the database schema.")
	migrateUp := migrateCmd.Command("up", "Apply all pending migrations.").Default()
	migrateDown := migrateCmd.Command("down", "Roll back the latest migration.")
	migrateStatus := migrateCmd.Command("status", "Print applied and pending migrations.")

	seedCmd := cli.Command("seed", "Import pokemons from a CSV file in one transaction.")
	seedFile := seedCmd.Flag("file", "CSV file with the pokemon export").Short('f').Default("data/pokemon.csv").String()
	seedReplace := seedCmd.Flag("replace", "Delete existing pokemons before importing").Bool()

	command := kingpin.MustParse(cli.Parse(os.Args[1:]))

	cfg, err := config.Load(*configFile, *envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config loading failed: %v\n", err)
		os.Exit(1)
	}
	// the CLI migrates explicitly; never implicitly on open
	cfg.Database.AutoMigrate = false
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Logger initialization failed: %v\n", err)
		os.Exit(1)
	}
	log = log.With().Str("module", "cli").Str("command", command).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer a.Close()

	switch command {
	case migrateUp.FullCommand(), migrateDown.FullCommand(), migrateStatus.FullCommand():
		err = runMigrate(ctx, a, command, migrateUp.FullCommand(), migrateDown.FullCommand())
	case seedCmd.FullCommand():
		err = runSeed(ctx, a.Service, *seedFile, *seedReplace, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		a.Close()
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, a *app.App, command, up, down string) error {
	m, err := a.Migrator()
	if err != nil {
		return err
	}
	switch command {
	case up:
		return m.Up(ctx)
	case down:
		return m.Down(ctx)
	default:
		return m.Status(ctx)
	}
}

func runSeed(ctx context.Context, svc service.PokemonService, path string, replace bool, log zerolog.Logger) error {
	start := time.Now()
	n, err := seed.File(ctx, svc, path, replace)
	if err != nil {
		if fe := service.FieldErrors(err); len(fe) > 0 {
			log.Error().Interface("field_errors", fe).Msg("seed file contains invalid entries")
		}
		return err
	}
	log.Info().Int("inserted", n).Bool("replace", replace).Dur("took", time.Since(start)).Str("file", path).Msg("seed done")
	return nil
}
