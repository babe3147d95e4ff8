package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/turnbattle/internal/config"
	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/db"
	"github.com/udisondev/turnbattle/internal/game/replay"
	"github.com/udisondev/turnbattle/internal/sim"
)

const ConfigPath = "config/battlesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("TURNBATTLE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	slog.Info("battle simulator starting",
		"battles", cfg.Battles,
		"workers", cfg.Workers,
		"max_turns", cfg.MaxTurns,
		"seed", cfg.Seed,
		"verify", cfg.VerifyReplay,
		"database", cfg.Database.Enabled,
	)

	moves, err := loadMoves(cfg.MovesPath)
	if err != nil {
		return fmt.Errorf("loading moves: %w", err)
	}
	roster, err := loadRoster(cfg.RosterPath)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	if err := roster.Validate(moves); err != nil {
		return fmt.Errorf("validating roster: %w", err)
	}
	slog.Info("reference data loaded", "moves", moves.Len(), "roster", len(roster.Combatants))

	var store sim.Store
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		store = db.NewBattleRepository(database.Pool())
	}

	deps := replay.Deps{Moves: moves, Chart: data.DefaultTypeChart()}
	outcomes, err := sim.NewRunner(cfg, roster, deps, store).Run(ctx)
	if err != nil {
		return fmt.Errorf("running battles: %w", err)
	}

	decided := 0
	for _, out := range outcomes {
		if _, ok := out.Recording.Winner(); ok {
			decided++
		}
	}
	slog.Info("battle simulator finished", "battles", len(outcomes), "decided", decided)
	return nil
}

func loadMoves(path string) (*data.MoveCatalog, error) {
	if path == "" {
		return data.DefaultMoveCatalog()
	}
	return data.LoadMoveCatalog(path)
}

func loadRoster(path string) (*data.Roster, error) {
	if path == "" {
		return data.DefaultRoster()
	}
	return data.LoadRoster(path)
}
