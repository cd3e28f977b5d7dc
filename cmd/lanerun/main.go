package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finlit/lanerun/internal/audio"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/hud"
	"github.com/finlit/lanerun/internal/scripting"
	"github.com/finlit/lanerun/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load data tables
	items, err := data.ItemsOrDefault(cfg.Data.ItemsPath)
	if err != nil {
		return fmt.Errorf("items: %w", err)
	}
	layout, err := data.LayoutOrDefault(cfg.Data.LayoutPath)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	log.Info("data loaded", zap.Int("items", items.Count()), zap.Int("placements", layout.Count()))

	// 4. Lua rules
	scripts, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	presets := scripts.Presets(config.Presets())

	// 5. HUD, audio, terminal
	h, err := hud.New(cfg.HUD.Language)
	if err != nil {
		return fmt.Errorf("hud: %w", err)
	}
	player := audio.NewPlayer(cfg.Audio, log)
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &game{
		cfg:     cfg,
		log:     log,
		items:   items,
		layout:  layout,
		scripts: scripts,
		presets: presets,
		names:   config.PresetNames(presets),
		hud:     h,
		player:  player,
		screen:  screen,
		surface: tui.New(screen, h),
		seed:    seed,
	}
	g.selected = g.indexOf(cfg.Game.Difficulty)
	if err := g.build(); err != nil {
		return err
	}

	// 6. Frame loop
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Frame.TickRate)
	defer ticker.Stop()
	log.Info("frame loop started", zap.Duration("tick", cfg.Frame.TickRate), zap.Uint64("seed", seed))

	g.last = time.Now()
	for {
		select {
		case now := <-ticker.C:
			g.frame(now)
		case ev := <-events:
			if g.handle(ev) {
				log.Info("quit", zap.Int("score", g.eng.Score()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("signal received", zap.String("signal", sig.String()))
			g.eng.Stop()
			return nil
		}
	}
}

// loadConfig reads LANERUN_CONFIG, or config/runner.toml when the variable is
// unset. A missing default file means built-in defaults.
func loadConfig() (*config.Config, error) {
	if p := os.Getenv("LANERUN_CONFIG"); p != "" {
		return config.Load(p)
	}
	cfg, err := config.Load("config/runner.toml")
	if errors.Is(err, fs.ErrNotExist) {
		return config.Defaults(), nil
	}
	return cfg, err
}

// newLogger writes to cfg.File; the terminal belongs to the game screen.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	zapCfg.OutputPaths = []string{cfg.File}
	zapCfg.ErrorOutputPaths = []string{cfg.File}

	return zapCfg.Build()
}
