package system

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/vmath"
	"github.com/finlit/lanerun/internal/world"
)

const frame = 16 * time.Millisecond

type fixture struct {
	st     *world.State
	bus    *event.Bus
	r      *rng.Rand
	items  *data.ItemTable
	runner *coresys.Runner
	frames int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d, err := config.Lookup(config.Presets(), "medium")
	if err != nil {
		t.Fatal(err)
	}
	items, err := data.DefaultItemTable()
	if err != nil {
		t.Fatal(err)
	}
	st := world.NewState(d, config.DefaultTuning())
	st.Begin()
	f := &fixture{st: st, bus: event.NewBus(), r: rng.New(1234), items: items}
	f.runner = coresys.NewRunner()
	f.runner.Register(NewRecycleSystem(st, f.r))
	f.runner.Register(NewSpawnSystem(st, items, f.r, f.bus, zap.NewNop()))
	f.runner.Register(NewAvatarSystem(st))
	f.runner.Register(NewCollisionSystem(st, f.bus, zap.NewNop()))
	f.runner.Register(NewAmbientSystem(st, f.r, f.bus))
	f.runner.Register(NewOutputSystem(f.bus, func() { f.frames++ }))
	f.runner.Register(NewCleanupSystem(st.ECS))
	f.runner.HaltWhen(func() bool { return !st.Session.Running })
	return f
}

func (f *fixture) tick(dt time.Duration) {
	f.runner.Tick(dt)
	f.st.Now += dt
}

// item places a scoring item directly, bypassing the spawner.
func (f *fixture) item(kind component.ItemKind, lane int, z float64) ecs.EntityID {
	id := f.st.ECS.CreateEntity()
	f.st.Transforms.Set(id, &component.Transform{Pos: vmath.V(f.st.LaneX(lane), 1, z), Visible: true})
	f.st.Items.Set(id, &component.Item{Kind: kind, Lane: lane, Name: kind.String()})
	// Keep the spawner quiet; tests that want it reset Spawned.
	f.st.Session.Spawned = 1
	f.st.Session.LastSpawnAt = f.st.Now
	return id
}

func (f *fixture) tile(z, factor, threshold, span, jitter float64) (ecs.EntityID, *component.Transform, *component.Tile) {
	id := f.st.ECS.CreateEntity()
	tr := &component.Transform{Pos: vmath.V(0, 0, z), Visible: true}
	tile := &component.Tile{Kind: "post", Layer: "street", Factor: factor, Threshold: threshold, Span: span, Jitter: jitter}
	f.st.Transforms.Set(id, tr)
	f.st.Tiles.Set(id, tile)
	return id, tr, tile
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRecycleMovesByLayerFactor(t *testing.T) {
	f := newFixture(t)
	_, tr, _ := f.tile(-100, 0.25, 80, 320, 0)
	NewRecycleSystem(f.st, f.r).Update(time.Second)
	// 3 speed * 12 scale * 0.25 factor * 1s
	if !approx(tr.Pos.Z, -91) {
		t.Fatalf("z = %v, want -91", tr.Pos.Z)
	}
}

func TestRecycleWrapBound(t *testing.T) {
	f := newFixture(t)
	sys := NewRecycleSystem(f.st, f.r)
	_, tr, tile := f.tile(79.95, 0.25, 80, 320, 0)

	p := tr.Pos.Z
	delta := f.st.Speed() * frame.Seconds() * 0.25
	sys.Update(frame)
	if !approx(tr.Pos.Z, p+delta-320) {
		t.Fatalf("z = %v, want %v", tr.Pos.Z, p+delta-320)
	}
	if tile.Wraps != 1 {
		t.Fatalf("wraps = %d", tile.Wraps)
	}
	if tr.Pos.Z < -240 || tr.Pos.Z > 80 {
		t.Fatalf("z = %v outside band", tr.Pos.Z)
	}
}

func TestRecycleJitterStaysInBand(t *testing.T) {
	f := newFixture(t)
	sys := NewRecycleSystem(f.st, f.r)
	type pair struct {
		tr   *component.Transform
		tile *component.Tile
	}
	var tiles []pair
	for i := 0; i < 20; i++ {
		_, tr, tile := f.tile(-2100+float64(i)*150, 0.25, 900, 3000, 150)
		tiles = append(tiles, pair{tr, tile})
	}
	for i := 0; i < 20000; i++ {
		sys.Update(50 * time.Millisecond)
		for _, p := range tiles {
			if p.tr.Pos.Z > 900 || p.tr.Pos.Z < 900-3000-150 {
				t.Fatalf("tick %d: z = %v outside [-2250, 900]", i, p.tr.Pos.Z)
			}
		}
	}
	for _, p := range tiles {
		if p.tile.Wraps == 0 {
			t.Fatal("expected every tile to wrap at least once")
		}
	}
}

func TestRecycleCatchesUpAfterStall(t *testing.T) {
	f := newFixture(t)
	_, tr, tile := f.tile(0, 1, 80, 320, 0)
	NewRecycleSystem(f.st, f.r).Update(20 * time.Second) // 720 units
	if tr.Pos.Z > 80 || tr.Pos.Z < -240 {
		t.Fatalf("z = %v outside band", tr.Pos.Z)
	}
	if tile.Wraps != 2 {
		t.Fatalf("wraps = %d, want 2", tile.Wraps)
	}
}

func TestSpawnCadence(t *testing.T) {
	f := newFixture(t)
	sys := NewSpawnSystem(f.st, f.items, f.r, f.bus, zap.NewNop())

	sys.Update(0)
	if f.st.Items.Len() != 1 {
		t.Fatalf("items after first tick = %d, want 1", f.st.Items.Len())
	}
	f.st.Now = 2499 * time.Millisecond
	sys.Update(0)
	if f.st.Items.Len() != 1 {
		t.Fatal("spawned before the interval elapsed")
	}
	f.st.Now = 2500 * time.Millisecond
	sys.Update(0)
	if f.st.Items.Len() != 2 {
		t.Fatalf("items = %d, want 2", f.st.Items.Len())
	}
	if f.st.Session.LastSpawnAt != 2500*time.Millisecond {
		t.Fatalf("last spawn = %v", f.st.Session.LastSpawnAt)
	}
}

func TestSpawnPlacement(t *testing.T) {
	f := newFixture(t)
	var spawned []event.ItemSpawned
	event.Subscribe(f.bus, func(e event.ItemSpawned) { spawned = append(spawned, e) })
	NewSpawnSystem(f.st, f.items, f.r, f.bus, zap.NewNop()).Update(0)
	f.bus.Flush()
	if len(spawned) != 1 {
		t.Fatalf("events = %d", len(spawned))
	}
	id := spawned[0].Item
	tr, _ := f.st.Transforms.Get(id)
	it, _ := f.st.Items.Get(id)
	if tr.Pos.Z != -80 || tr.Pos.Y != 1 || tr.Pos.X != f.st.LaneX(it.Lane) {
		t.Fatalf("placed at %+v on lane %d", tr.Pos, it.Lane)
	}
	if it.State != component.ItemActive || it.Name == "" {
		t.Fatalf("item = %+v", it)
	}
}

func TestSpawnWeighting(t *testing.T) {
	f := newFixture(t)
	sys := NewSpawnSystem(f.st, f.items, f.r, f.bus, zap.NewNop())
	const n = 2000
	for i := 0; i < n; i++ {
		sys.Update(0)
		f.st.Now += f.st.Difficulty.SpawnInterval
	}
	good := 0
	lanes := make([]int, 3)
	f.st.Items.Each(func(_ ecs.EntityID, it *component.Item) {
		if it.Kind == component.KindGood {
			good++
		}
		lanes[it.Lane]++
	})
	if f.st.Items.Len() != n {
		t.Fatalf("items = %d", f.st.Items.Len())
	}
	if ratio := float64(good) / n; ratio < 0.55 || ratio > 0.65 {
		t.Fatalf("good ratio = %.3f, want ~0.6", ratio)
	}
	for l, c := range lanes {
		if c < n/3-120 || c > n/3+120 {
			t.Fatalf("lane %d got %d of %d", l, c, n)
		}
	}
}

func TestItemMovesAndPasses(t *testing.T) {
	f := newFixture(t)
	// Lane 0 keeps it out of the avatar's reach.
	id := f.item(component.KindGood, 0, -80)
	var passed []ecs.EntityID
	event.Subscribe(f.bus, func(e event.ItemPassed) { passed = append(passed, e.Item) })

	f.tick(time.Second)
	tr, _ := f.st.Transforms.Get(id)
	if !approx(tr.Pos.Z, -80+3*12*1) {
		t.Fatalf("z = %v, want -44", tr.Pos.Z)
	}
	for i := 0; i < 3 && f.st.ECS.Alive(id); i++ {
		f.tick(time.Second)
	}
	if f.st.ECS.Alive(id) {
		t.Fatal("item still alive after passing the viewer")
	}
	if len(passed) != 1 || passed[0] != id {
		t.Fatalf("passed events = %v", passed)
	}
	if f.st.Session.Score != 0 {
		t.Fatalf("score = %d", f.st.Session.Score)
	}
}

func TestCollisionGoodItemScoresOnce(t *testing.T) {
	f := newFixture(t)
	var scores []int
	event.Subscribe(f.bus, func(e event.ScoreChanged) { scores = append(scores, e.Score) })
	id := f.item(component.KindGood, 1, -1)

	sys := NewCollisionSystem(f.st, f.bus, zap.NewNop())
	sys.Update(frame)
	sys.Update(frame)
	f.bus.Flush()

	if f.st.Session.Score != 1 {
		t.Fatalf("score = %d", f.st.Session.Score)
	}
	if len(scores) != 1 || scores[0] != 1 {
		t.Fatalf("score events = %v", scores)
	}
	it, _ := f.st.Items.Get(id)
	if it.State != component.ItemConsumedGood {
		t.Fatalf("state = %v", it.State)
	}
	if !f.st.ECS.Pending(id) {
		t.Fatal("consumed item not queued for release")
	}
}

func TestCollisionOutsideRadius(t *testing.T) {
	f := newFixture(t)
	f.item(component.KindGood, 1, -2.6)
	f.item(component.KindBad, 2, 0)
	NewCollisionSystem(f.st, f.bus, zap.NewNop()).Update(frame)
	if f.st.Session.Score != 0 || !f.st.Session.Running {
		t.Fatalf("session = %+v", f.st.Session)
	}
}

func TestCollisionSingleGameOver(t *testing.T) {
	f := newFixture(t)
	var overs []event.GameOver
	var scores []int
	event.Subscribe(f.bus, func(e event.GameOver) { overs = append(overs, e) })
	event.Subscribe(f.bus, func(e event.ScoreChanged) { scores = append(scores, e.Score) })

	f.st.Session.Score = 4
	first := f.item(component.KindBad, 1, 0.5)
	f.item(component.KindBad, 1, -0.5)
	good := f.item(component.KindGood, 1, 0)

	sys := NewCollisionSystem(f.st, f.bus, zap.NewNop())
	sys.Update(frame)
	sys.Update(frame)
	f.bus.Flush()

	if len(overs) != 1 {
		t.Fatalf("game over fired %d times", len(overs))
	}
	if overs[0].FinalScore != 4 || overs[0].Hazard != first {
		t.Fatalf("game over = %+v", overs[0])
	}
	if len(scores) != 0 || f.st.Session.Score != 4 {
		t.Fatalf("score changed after game over: %v / %d", scores, f.st.Session.Score)
	}
	if it, _ := f.st.Items.Get(good); it.State != component.ItemActive {
		t.Fatalf("good item state = %v, want untouched", it.State)
	}
	if f.st.Session.Running {
		t.Fatal("session still running")
	}
}

func TestEveryItemReachesOneTerminalState(t *testing.T) {
	f := newFixture(t)
	terminal := map[ecs.EntityID]int{}
	event.Subscribe(f.bus, func(e event.ItemPassed) { terminal[e.Item]++ })

	spawned := map[ecs.EntityID]bool{}
	event.Subscribe(f.bus, func(e event.ItemSpawned) { spawned[e.Item] = true })

	// Keep the runner away from items: hazards would end the session.
	f.st.Tuning.HitRadius = 0.001
	for i := 0; i < 60*40; i++ {
		f.tick(frame)
	}
	// run one more spawn interval past the last spawn with spawning disabled
	f.st.Difficulty.SpawnInterval = time.Hour
	for i := 0; i < 60*5; i++ {
		f.tick(frame)
	}
	if len(spawned) < 10 {
		t.Fatalf("only %d items spawned", len(spawned))
	}
	for id := range spawned {
		if terminal[id] != 1 {
			t.Fatalf("item %v reached %d terminal transitions", id, terminal[id])
		}
		if f.st.ECS.Alive(id) {
			t.Fatalf("item %v still alive", id)
		}
	}
	if f.st.Items.Len() != 0 {
		t.Fatalf("items left = %d", f.st.Items.Len())
	}
}

func TestAvatarSystemEases(t *testing.T) {
	f := newFixture(t)
	a := &f.st.Avatar
	a.RequestLane(world.Right, 0, 0, 3)
	sys := NewAvatarSystem(f.st)
	prev := a.Position.X
	for i := 0; i < 100; i++ {
		sys.Update(frame)
		if a.Position.X < prev || a.Position.X > 4 {
			t.Fatalf("tick %d: x = %v not monotone toward 4", i, a.Position.X)
		}
		prev = a.Position.X
	}
	if math.Abs(a.Position.X-4) > 1e-3 {
		t.Fatalf("x = %v", a.Position.X)
	}
}

func TestPickupBurstAndReappear(t *testing.T) {
	f := newFixture(t)
	id, tr, tile := f.tile(-1, 1, 80, 320, 0)
	tr.Pos = vmath.V(0, -0.45, -1)
	f.st.Pickups.Set(id, &component.Pickup{})
	var bursts []event.BurstSpawned
	event.Subscribe(f.bus, func(e event.BurstSpawned) { bursts = append(bursts, e) })

	sys := NewAmbientSystem(f.st, f.r, f.bus)
	sys.Update(frame)
	sys.Update(frame)
	f.bus.Flush()

	if len(bursts) != 1 || bursts[0].Pickup != id {
		t.Fatalf("bursts = %v", bursts)
	}
	if tr.Visible {
		t.Fatal("pickup still visible after burst")
	}
	b, ok := f.st.Bursts.Get(bursts[0].Burst)
	if !ok || len(b.Particles) != 30 {
		t.Fatal("burst missing or wrong size")
	}
	for _, p := range b.Particles {
		if p.Vel.X < -1 || p.Vel.X >= 1 || p.Vel.Z < -1 || p.Vel.Z >= 1 {
			t.Fatalf("lateral velocity out of range: %+v", p.Vel)
		}
	}

	// Wrapping the tile brings the note back, away from the avatar.
	tile.Wraps++
	tr.Pos.Z = -200
	sys.Update(frame)
	if !tr.Visible {
		t.Fatal("pickup did not reappear after its tile wrapped")
	}
}

func TestBurstFallsAndIsRemoved(t *testing.T) {
	f := newFixture(t)
	sys := NewAmbientSystem(f.st, f.r, f.bus)
	id := sys.spawnBurst(vmath.V(0, -0.45, 0))
	for i := 0; i < 200 && f.st.ECS.Alive(id); i++ {
		sys.Update(frame)
		f.st.ECS.FlushDestroyQueue()
	}
	if f.st.ECS.Alive(id) {
		t.Fatal("burst never removed")
	}
}

func TestSpinnerTurns(t *testing.T) {
	f := newFixture(t)
	id, tr, _ := f.tile(-50, 1, 80, 320, 0)
	f.st.Spins.Set(id, &component.Spin{Rate: 0.5})
	NewAmbientSystem(f.st, f.r, f.bus).Update(time.Second)
	if !approx(tr.Angle, 0.5) {
		t.Fatalf("angle = %v", tr.Angle)
	}
}

func TestOutputFlushesBeforeRender(t *testing.T) {
	bus := event.NewBus()
	var order []string
	event.Subscribe(bus, func(event.ScoreChanged) { order = append(order, "event") })
	sys := NewOutputSystem(bus, func() { order = append(order, "render") })
	event.Emit(bus, event.ScoreChanged{Score: 1})
	sys.Update(frame)
	if len(order) != 2 || order[0] != "event" || order[1] != "render" {
		t.Fatalf("order = %v", order)
	}
}

func TestHaltedTickStillRenders(t *testing.T) {
	f := newFixture(t)
	f.st.Session.End()
	_, tr, _ := f.tile(0, 1, 80, 320, 0)
	f.tick(frame)
	if tr.Pos.Z != 0 {
		t.Fatal("tiles moved while the session was over")
	}
	if f.frames != 1 {
		t.Fatalf("frames = %d, want 1", f.frames)
	}
}
