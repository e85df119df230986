package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation at a fixed wall-clock cadence. One tick
// is one simulated day. Ticks that would fall while the game is paused
// are skipped outright, never queued.
type Engine struct {
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	sim *Simulation

	// OnTick receives a snapshot after each completed tick — the hook
	// the websocket broadcaster hangs off.
	OnTick func(Snapshot)
}

// NewEngine creates an engine over a simulation with default pacing.
func NewEngine(sim *Simulation, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = time.Second
	}
	return &Engine{
		Speed:    1.0,
		Interval: interval,
		sim:      sim,
	}
}

// Run starts the tick loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("tick engine started", "interval", e.Interval, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.sim.Step()
		if e.OnTick != nil {
			e.OnTick(e.sim.Snapshot())
		}

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("tick engine stopped", "day", e.sim.Snapshot().Day)
}

// Stop halts the tick loop after the current tick.
func (e *Engine) Stop() {
	e.Running = false
}

// SetSpeed adjusts the cadence multiplier; 0 pauses.
func (e *Engine) SetSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	e.Speed = v
	slog.Info("speed changed", "speed", v)
}
