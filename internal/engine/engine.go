// Package engine runs one lane-runner game: it owns the session state, wires
// the per-tick systems in phase order and exposes the lifecycle, input and
// frame-stepping calls a host needs.
//
// An Engine is driven from a single goroutine. Input calls (lane changes,
// pause, resize) are plain state writes made between ticks; the lane-change
// debounce is the only guard against bursts of input, and there is no lock.
package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/scene"
	"github.com/finlit/lanerun/internal/system"
	"github.com/finlit/lanerun/internal/vmath"
	"github.com/finlit/lanerun/internal/world"
)

// Callbacks are the host's hooks. All run on the ticking goroutine during the
// output phase, after the tick's simulation has finished.
type Callbacks struct {
	OnScoreChange func(score int)
	OnGameOver    func(finalScore int)
	OnPickup      func() // a decorative pickup burst into particles
}

// RunStats counts item traffic over one session.
type RunStats struct {
	Spawned int
	Passed  int
	Pickups int
}

type Options struct {
	Difficulty config.Difficulty
	Tuning     config.Tuning
	Items      *data.ItemTable
	Layout     *data.Layout
	Surface    Surface
	Callbacks  Callbacks
	Seed       uint64 // 0 picks 1
	Logger     *zap.Logger
}

// Stream salts for rng.Derive; each subsystem draws from its own sequence.
const (
	saltScene uint64 = iota + 1
	saltRecycle
	saltSpawn
	saltAmbient
)

var ErrNoItems = errors.New("engine: no item table")

type Engine struct {
	opts Options
	log  *zap.Logger

	state   State
	stopped bool
	input   bool // lane requests are honoured only while attached
	session uint64

	st     *world.State
	bus    *event.Bus
	runner *coresys.Runner
	proj   Projection
	frame  Frame
	stats  RunStats
}

// New validates opts and returns an idle engine in the Start state.
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Items == nil {
		return nil, ErrNoItems
	}
	if opts.Layout == nil {
		l, err := data.DefaultLayout()
		if err != nil {
			return nil, err
		}
		opts.Layout = l
	}
	if err := opts.Difficulty.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	if err := scene.CheckBands(opts.Layout); err != nil {
		return nil, err
	}
	opts.Difficulty = opts.Difficulty.Clone()
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	e := &Engine{
		opts:    opts,
		log:     opts.Logger,
		state:   StateStart,
		stopped: true,
	}
	if opts.Surface != nil {
		w, h := opts.Surface.Size()
		e.proj = NewProjection(w, h)
	}
	return e, nil
}

// Start begins a session. It is a no-op while a session exists and when the
// surface is missing or has no area.
func (e *Engine) Start() {
	if e.st != nil {
		return
	}
	if e.opts.Surface == nil {
		e.log.Debug("start ignored: no surface")
		return
	}
	w, h := e.opts.Surface.Size()
	if w <= 0 || h <= 0 {
		e.log.Debug("start ignored: empty surface", zap.Int("w", w), zap.Int("h", h))
		return
	}
	e.proj = NewProjection(w, h)

	e.session++
	master := rng.New(e.opts.Seed + e.session - 1)
	st := world.NewState(e.opts.Difficulty, e.opts.Tuning)
	st.Begin()

	surface := e.opts.Surface
	st.ECS.OnDestroy(func(id ecs.EntityID) { surface.Release(id) })

	stats, err := scene.Build(st, e.opts.Layout, master.Derive(saltScene))
	if err != nil {
		// Layout bands were checked in New; this only fires for placements
		// that fall behind their band.
		e.log.Error("scene build failed", zap.Error(err))
		st.Clear()
		return
	}

	bus := event.NewBus()
	event.Subscribe(bus, e.onScore)
	event.Subscribe(bus, e.onGameOver)
	event.Subscribe(bus, e.onItemSpawned)
	event.Subscribe(bus, e.onItemPassed)
	event.Subscribe(bus, e.onBurst)

	runner := coresys.NewRunner()
	runner.Register(system.NewRecycleSystem(st, master.Derive(saltRecycle)))
	runner.Register(system.NewSpawnSystem(st, e.opts.Items, master.Derive(saltSpawn), bus, e.log))
	runner.Register(system.NewAvatarSystem(st))
	runner.Register(system.NewCollisionSystem(st, bus, e.log))
	runner.Register(system.NewAmbientSystem(st, master.Derive(saltAmbient), bus))
	runner.Register(system.NewOutputSystem(bus, e.render))
	runner.Register(system.NewCleanupSystem(st.ECS))
	runner.HaltWhen(func() bool { return !st.Session.Running })

	e.st, e.bus, e.runner = st, bus, runner
	e.stats = RunStats{}
	e.stopped = false
	e.input = true
	e.state = StatePlaying

	e.log.Info("session started",
		zap.Uint64("session", e.session),
		zap.String("difficulty", e.opts.Difficulty.Name),
		zap.Int("tiles", stats.Tiles),
		zap.Int("clusters", stats.Clusters),
		zap.Int("pickups", stats.Pickups))
}

// Stop ends the session: no further tick runs, input is detached, every
// entity's renderable is released and all stores are cleared. Calling it
// without a session does nothing.
func (e *Engine) Stop() {
	e.stopped = true
	e.input = false
	if e.st == nil {
		e.state = StateStart
		return
	}
	e.bus.Drop()
	e.st.Clear()
	score := e.st.Session.Score
	elapsed := e.st.Session.Elapsed(e.st.Now)
	e.st, e.bus, e.runner = nil, nil, nil
	e.state = StateStart
	e.log.Info("session stopped",
		zap.Uint64("session", e.session),
		zap.Int("score", score),
		zap.Duration("elapsed", elapsed),
		zap.Int("spawned", e.stats.Spawned),
		zap.Int("passed", e.stats.Passed),
		zap.Int("pickups", e.stats.Pickups))
}

// Restart tears the session down and starts a fresh one: score 0, avatar on
// the middle lane.
func (e *Engine) Restart() {
	e.Stop()
	e.Start()
}

func (e *Engine) Pause() {
	if e.state != StatePlaying {
		return
	}
	e.state = StatePaused
	e.log.Debug("paused")
}

func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.state = StatePlaying
	e.log.Debug("resumed")
}

// BackToMenu leaves a paused or finished session for the start screen.
func (e *Engine) BackToMenu() {
	if e.state != StatePaused && e.state != StateGameOver {
		return
	}
	e.Stop()
}

// SetDifficulty replaces the difficulty. A live session restarts with it.
func (e *Engine) SetDifficulty(d config.Difficulty) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("set difficulty: %w", err)
	}
	e.opts.Difficulty = d.Clone()
	if e.st != nil {
		e.Restart()
	}
	return nil
}

// RequestLaneChange moves the avatar one lane left or right. It reports
// whether the request was honoured: it is ignored outside play, off either
// edge and within the debounce window of the previous accepted change.
func (e *Engine) RequestLaneChange(dir world.Direction) bool {
	if !e.input || e.state != StatePlaying || e.st == nil {
		return false
	}
	ok := e.st.Avatar.RequestLane(dir, e.st.Now, e.st.Tuning.Debounce, e.st.Difficulty.LaneCount())
	if ok {
		e.log.Debug("lane change", zap.Stringer("dir", dir), zap.Int("lane", e.st.Avatar.TargetLane))
	}
	return ok
}

// TapDeadZone is the half-width, in pixels, of the centre strip where a tap
// does not change lanes.
const TapDeadZone = 50

// RequestLaneAt maps a tap at pixel x on a surface of the given width to a
// lane change: left of the centre strip moves left, right of it moves right.
func (e *Engine) RequestLaneAt(x, width int) bool {
	centre := width / 2
	switch {
	case x < centre-TapDeadZone:
		return e.RequestLaneChange(world.Left)
	case x > centre+TapDeadZone:
		return e.RequestLaneChange(world.Right)
	}
	return false
}

// Resize recomputes the projection. Simulation state is untouched.
func (e *Engine) Resize(w, h int) {
	e.proj = NewProjection(w, h)
}

// Tick advances the engine by dt. While playing it runs every phase; while
// paused or after game over it only re-renders. After Stop it does nothing.
func (e *Engine) Tick(dt time.Duration) {
	if e.stopped || e.st == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if e.state.Simulating() {
		// Callbacks may stop or restart the engine mid-tick; the clock
		// belongs to the session that ran.
		st := e.st
		e.runner.Tick(dt)
		st.Now += dt
		return
	}
	e.runner.TickPhase(coresys.PhaseOutput, 0)
}

func (e *Engine) onScore(ev event.ScoreChanged) {
	if cb := e.opts.Callbacks.OnScoreChange; cb != nil {
		cb(ev.Score)
	}
}

func (e *Engine) onGameOver(ev event.GameOver) {
	e.state = StateGameOver
	var elapsed time.Duration
	if e.st != nil {
		elapsed = e.st.Session.Elapsed(e.st.Now)
	}
	e.log.Info("game over",
		zap.Uint64("session", e.session),
		zap.Int("score", ev.FinalScore),
		zap.Duration("elapsed", elapsed),
		zap.Int("spawned", e.stats.Spawned),
		zap.Int("passed", e.stats.Passed))
	if cb := e.opts.Callbacks.OnGameOver; cb != nil {
		cb(ev.FinalScore)
	}
}

func (e *Engine) onItemSpawned(event.ItemSpawned) { e.stats.Spawned++ }

func (e *Engine) onItemPassed(event.ItemPassed) { e.stats.Passed++ }

func (e *Engine) onBurst(event.BurstSpawned) {
	e.stats.Pickups++
	if cb := e.opts.Callbacks.OnPickup; cb != nil {
		cb()
	}
}

// render fills the reusable frame from the session and submits it.
func (e *Engine) render() {
	st := e.st
	if st == nil {
		return
	}
	f := &e.frame
	f.reset()
	f.Seq++
	f.Time = st.Now
	f.State = e.state
	f.Score = st.Session.Score
	f.Difficulty = st.Difficulty.Name
	f.Lanes = st.Difficulty.LanePositions
	f.Projection = e.proj
	f.Avatar = AvatarView{Pos: st.Avatar.Position, Lane: st.Avatar.CurrentLane, Pose: st.Avatar.Pose}

	ecs.Each2(st.Tiles, st.Transforms, func(id ecs.EntityID, tile *component.Tile, tr *component.Transform) {
		if !tr.Visible {
			return
		}
		v := TileView{ID: id, Kind: tile.Kind, Layer: tile.Layer, Pos: tr.Pos, Angle: tr.Angle}
		if c, ok := st.Clusters.Get(id); ok {
			v.Members = c.Members
		}
		f.Tiles = append(f.Tiles, v)
	})
	ecs.Each2(st.Items, st.Transforms, func(id ecs.EntityID, it *component.Item, tr *component.Transform) {
		if it.State.Terminal() {
			return
		}
		f.Items = append(f.Items, ItemView{
			ID: id, Kind: it.Kind, Name: it.Name, Category: it.Category,
			Color: it.Color, Lane: it.Lane, Pos: tr.Pos,
		})
	})
	st.Bursts.Each(func(id ecs.EntityID, b *component.Burst) {
		ps := make([]vmath.Vec3, 0, len(b.Particles))
		for _, p := range b.Particles {
			ps = append(ps, p.Pos)
		}
		f.Bursts = append(f.Bursts, BurstView{ID: id, Age: b.Age, Particles: ps})
	})

	e.opts.Surface.Render(f)
}

// State returns the current state machine state.
func (e *Engine) State() State { return e.state }

// Score returns the session score, or 0 without a session.
func (e *Engine) Score() int {
	if e.st == nil {
		return 0
	}
	return e.st.Session.Score
}

// Session exposes the live world state, nil between sessions. Callers must
// not mutate it outside the ticking goroutine.
func (e *Engine) Session() *world.State { return e.st }

// Difficulty returns the configured difficulty.
func (e *Engine) Difficulty() config.Difficulty { return e.opts.Difficulty.Clone() }

// Stats returns the item counts of the current or last session.
func (e *Engine) Stats() RunStats { return e.stats }

// Projection returns the current projection.
func (e *Engine) Projection() Projection { return e.proj }
