package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/config"
)

// Engine wraps a single gopher-lua VM holding the game's tunable rules:
// difficulty presets and item weighting. Every call falls back to the
// built-in value when the script is missing, fails or returns garbage.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts under scriptsDir/game.
// An empty scriptsDir yields an engine with no scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "game")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load game scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString creates an engine from inline Lua source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e, err := NewEngine("", log)
	if err != nil {
		return nil, err
	}
	if err := e.vm.DoString(src); err != nil {
		e.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// Difficulty calls Lua difficulty(name), which returns
// {speed=, spawn_interval_ms=, lanes={...}} or nil. Missing fields keep the
// fallback's value; an invalid result is discarded.
func (e *Engine) Difficulty(name string, fallback config.Difficulty) config.Difficulty {
	fn := e.vm.GetGlobal("difficulty")
	if fn == lua.LNil {
		return fallback
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(name)); err != nil {
		e.log.Error("lua difficulty error", zap.Error(err), zap.String("name", name))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return fallback
	}

	d := fallback.Clone()
	d.Name = name
	if v, ok := rt.RawGetString("speed").(lua.LNumber); ok {
		d.Speed = float64(v)
	}
	if v, ok := rt.RawGetString("spawn_interval_ms").(lua.LNumber); ok {
		d.SpawnInterval = time.Duration(float64(v) * float64(time.Millisecond))
	}
	if lanes, ok := rt.RawGetString("lanes").(*lua.LTable); ok && lanes.Len() > 0 {
		d.LanePositions = d.LanePositions[:0:0]
		for i := 1; i <= lanes.Len(); i++ {
			d.LanePositions = append(d.LanePositions, float64(lua.LVAsNumber(lanes.RawGetInt(i))))
		}
	}
	if err := d.Validate(); err != nil {
		e.log.Warn("lua difficulty rejected", zap.Error(err))
		return fallback
	}
	return d
}

// Presets resolves every preset in base through the script.
func (e *Engine) Presets(base map[string]config.Difficulty) map[string]config.Difficulty {
	out := make(map[string]config.Difficulty, len(base))
	for name, d := range base {
		out[name] = e.Difficulty(name, d)
	}
	return out
}

// GoodWeight calls Lua good_weight(name) for the probability that a spawn
// is a good item. Values outside [0, 1] are discarded.
func (e *Engine) GoodWeight(name string, fallback float64) float64 {
	fn := e.vm.GetGlobal("good_weight")
	if fn == lua.LNil {
		return fallback
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(name)); err != nil {
		e.log.Error("lua good_weight error", zap.Error(err), zap.String("name", name))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	v, ok := result.(lua.LNumber)
	if !ok || v < 0 || v > 1 {
		return fallback
	}
	return float64(v)
}
