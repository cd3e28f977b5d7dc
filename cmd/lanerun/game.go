package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/audio"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/engine"
	"github.com/finlit/lanerun/internal/hud"
	"github.com/finlit/lanerun/internal/scripting"
	"github.com/finlit/lanerun/internal/tui"
	"github.com/finlit/lanerun/internal/world"
)

// game is the host: it owns the screen, the scheduler and the menu, and
// forwards input to the engine.
type game struct {
	cfg     *config.Config
	log     *zap.Logger
	items   *data.ItemTable
	layout  *data.Layout
	scripts *scripting.Engine
	presets map[string]config.Difficulty
	names   []string

	hud     *hud.HUD
	player  *audio.Player
	screen  tcell.Screen
	surface *tui.Surface

	eng      *engine.Engine
	selected int
	seed     uint64
	last     time.Time
}

func (g *game) indexOf(name string) int {
	for i, n := range g.names {
		if n == name {
			return i
		}
	}
	for i, n := range g.names {
		if n == "medium" {
			return i
		}
	}
	return 0
}

// build creates an engine for the selected preset. Item weighting may differ
// per preset, so the tuning is rebuilt too.
func (g *game) build() error {
	name := g.names[g.selected]
	d := g.presets[name]
	tuning := g.cfg.Tuning
	tuning.GoodWeight = g.scripts.GoodWeight(name, tuning.GoodWeight)

	eng, err := engine.New(engine.Options{
		Difficulty: d,
		Tuning:     tuning,
		Items:      g.items,
		Layout:     g.layout,
		Surface:    g.surface,
		Seed:       g.seed,
		Logger:     g.log.Named("engine"),
		Callbacks: engine.Callbacks{
			OnScoreChange: g.onScore,
			OnGameOver:    g.onGameOver,
			OnPickup:      g.player.Pickup,
		},
	})
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	g.eng = eng
	return nil
}

func (g *game) onScore(score int) {
	var now time.Duration
	if st := g.eng.Session(); st != nil {
		now = st.Now
	}
	g.hud.ScoreChanged(score, now)
	g.player.Score()
}

func (g *game) onGameOver(score int) {
	g.player.GameOver()
	stats := g.eng.Stats()
	g.log.Info("run finished",
		zap.String("difficulty", g.names[g.selected]),
		zap.Int("score", score),
		zap.Int("passed", stats.Passed),
		zap.Int("pickups", stats.Pickups))
}

// frame advances the engine by the wall time since the previous frame,
// clamped so a stall does not teleport items through the runner.
func (g *game) frame(now time.Time) {
	dt := now.Sub(g.last)
	g.last = now
	if dt > g.cfg.Frame.MaxDelta {
		dt = g.cfg.Frame.MaxDelta
	}
	if g.eng.State() == engine.StateStart {
		g.surface.DrawMenu(g.names, g.selected)
		return
	}
	g.eng.Tick(dt)
}

func (g *game) start() {
	g.hud.Reset()
	g.eng.Start()
	g.last = time.Now()
}

func (g *game) restart() {
	g.hud.Reset()
	g.eng.Restart()
	g.last = time.Now()
}

// handle applies one terminal event and reports whether the game should quit.
func (g *game) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.eng.Resize(g.surface.Size())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 && g.eng.State() == engine.StatePlaying {
			x, _ := ev.Position()
			w, _ := g.screen.Size()
			if g.eng.RequestLaneAt(tui.TapPosition(x, w)) {
				g.player.Lane()
			}
		}
	case *tcell.EventKey:
		return g.key(tui.KeyAction(ev))
	}
	return false
}

func (g *game) key(act tui.Action) bool {
	if act == tui.ActQuit {
		return true
	}
	switch g.eng.State() {
	case engine.StateStart:
		switch act {
		case tui.ActLeft:
			g.selected = (g.selected + len(g.names) - 1) % len(g.names)
		case tui.ActRight:
			g.selected = (g.selected + 1) % len(g.names)
		case tui.ActConfirm:
			if err := g.build(); err != nil {
				g.log.Error("build engine", zap.Error(err))
				return false
			}
			g.start()
		}
	case engine.StatePlaying:
		switch act {
		case tui.ActLeft:
			if g.eng.RequestLaneChange(world.Left) {
				g.player.Lane()
			}
		case tui.ActRight:
			if g.eng.RequestLaneChange(world.Right) {
				g.player.Lane()
			}
		case tui.ActPause:
			g.eng.Pause()
		}
	case engine.StatePaused:
		switch act {
		case tui.ActPause, tui.ActConfirm:
			g.eng.Resume()
			g.last = time.Now()
		case tui.ActRestart:
			g.restart()
		case tui.ActMenu:
			g.eng.BackToMenu()
		}
	case engine.StateGameOver:
		switch act {
		case tui.ActRestart, tui.ActConfirm:
			g.restart()
		case tui.ActMenu:
			g.eng.BackToMenu()
		}
	}
	return false
}
