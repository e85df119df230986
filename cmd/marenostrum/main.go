// Command marenostrum runs the Punic Wars campaign simulation.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aquila/marenostrum/internal/api"
	"github.com/aquila/marenostrum/internal/chronicle"
	"github.com/aquila/marenostrum/internal/config"
	"github.com/aquila/marenostrum/internal/engine"
	"github.com/aquila/marenostrum/internal/entropy"
	"github.com/aquila/marenostrum/internal/narrative"
	"github.com/aquila/marenostrum/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("Mare Nostrum — Rome and Carthage", "seed", seed, "tick_interval", cfg.TickInterval)

	// ── Chronicle ─────────────────────────────────────────────────────
	var log *chronicle.DB
	if cfg.ChroniclePath != "" {
		if dir := filepath.Dir(cfg.ChroniclePath); dir != "." && cfg.ChroniclePath != ":memory:" {
			os.MkdirAll(dir, 0755)
		}
		log, err = chronicle.Open(cfg.ChroniclePath)
		if err != nil {
			slog.Error("failed to open chronicle", "error", err)
			os.Exit(1)
		}
		defer log.Close()
		slog.Info("chronicle opened", "path", cfg.ChroniclePath)
	}

	// ── World ─────────────────────────────────────────────────────────
	w, err := world.BuildWorld()
	if err != nil {
		slog.Error("world build failed", "error", err)
		os.Exit(1)
	}
	slog.Info("world ready",
		"nodes", len(w.Nodes),
		"units", len(w.Units),
		"day", w.Day,
	)

	// ── Narrative ─────────────────────────────────────────────────────
	client := narrative.NewClient(cfg.AnthropicKey)
	if client.Enabled() {
		slog.Info("narrative client enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — chronicle uses fallback text only")
	}
	reporter := narrative.NewReporter(client)

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(w, entropy.NewSource(seed), reporter, log)

	var opponents []world.Faction
	for _, name := range cfg.Opponents {
		if f, ok := world.ParseFaction(name); ok && f != world.FactionNeutral {
			opponents = append(opponents, f)
		}
	}
	sim.SetOpponents(opponents...)
	slog.Info("opponent policy armed", "factions", cfg.Opponents)

	eng := engine.NewEngine(sim, cfg.TickInterval)

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("MARE_ADMIN_KEY not set — command endpoints disabled")
	}
	hub := api.NewHub()
	eng.OnTick = hub.Broadcast

	server := &api.Server{
		Sim:      sim,
		Eng:      eng,
		Log:      log,
		Port:     cfg.APIPort,
		AdminKey: cfg.AdminKey,
		Hub:      hub,
	}
	server.Start()

	// ── Run ───────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown requested")
		eng.Stop()
	}()

	eng.Run()
}
