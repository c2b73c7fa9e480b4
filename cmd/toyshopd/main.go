// Command toyshopd serves the toy-shop simulator over HTTP: it hosts the
// round engine, hands out game sessions, and records played rounds to the
// SQLite ledger.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/toyshop/internal/api"
	"github.com/talgya/toyshop/internal/config"
	"github.com/talgya/toyshop/internal/entropy"
	"github.com/talgya/toyshop/internal/persistence"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		slog.Error("failed to parse environment", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Toy Shop Simulator starting", "addr", cfg.Addr)

	defaults, err := config.GameDefaults(cfg.DefaultsFile)
	if err != nil {
		slog.Error("failed to load game defaults", "error", err)
		os.Exit(1)
	}
	slog.Info("game defaults loaded",
		"rounds", defaults.Rounds,
		"starting_cash", defaults.StartingCash,
		"cost_range", [2]int{defaults.MinCost, defaults.MaxCost},
	)

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("ledger opened", "path", cfg.DBPath)

	var rng entropy.Source = entropy.Default()
	if client := entropy.NewClient(cfg.RandomOrgKey); client != nil {
		rng = client
		slog.Info("using random.org entropy")
	}

	server := &api.Server{
		Addr:        cfg.Addr,
		DB:          db,
		Rand:        rng,
		Defaults:    defaults,
		AdminKey:    cfg.AdminKey,
		CORSOrigins: cfg.CORSOrigins,
	}
	server.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
