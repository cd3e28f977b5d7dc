package ecs

import "testing"

type pos struct{ Z float64 }
type tag struct{ Name string }

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero ID")
	}
	if !p.Destroy(a) {
		t.Fatal("destroy of live entity reported false")
	}
	if p.Destroy(a) {
		t.Fatal("double destroy must be a no-op")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("slot not recycled: a=%d b=%d", a.Index(), b.Index())
	}
	if p.Alive(a) {
		t.Fatal("stale id still alive after slot reuse")
	}
	if !p.Alive(b) {
		t.Fatal("recycled id not alive")
	}
}

func TestEntityPoolReset(t *testing.T) {
	p := NewEntityPool()
	ids := []EntityID{p.Create(), p.Create(), p.Create()}
	p.Reset()
	for _, id := range ids {
		if p.Alive(id) {
			t.Fatalf("id %d survived reset", id)
		}
	}
	if p.Live() != 0 {
		t.Fatalf("live = %d after reset", p.Live())
	}
	if got := p.Create().Index(); got != 0 {
		t.Fatalf("first id after reset uses slot %d, want 0", got)
	}
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[pos]()
	for i := 1; i <= 5; i++ {
		s.Set(EntityID(i), &pos{Z: float64(i)})
	}
	s.Remove(EntityID(2))
	s.Remove(EntityID(4))
	s.Remove(EntityID(99))

	var got []float64
	s.Each(func(_ EntityID, p *pos) { got = append(got, p.Z) })
	want := []float64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if p, ok := s.Get(EntityID(5)); !ok || p.Z != 5 {
		t.Fatal("index not rebuilt after removal")
	}
}

func TestEach2OnlyVisitsIntersection(t *testing.T) {
	a := NewStore[pos]()
	b := NewStore[tag]()
	a.Set(1, &pos{Z: 1})
	a.Set(2, &pos{Z: 2})
	a.Set(3, &pos{Z: 3})
	b.Set(3, &tag{Name: "c"})
	b.Set(1, &tag{Name: "a"})

	var names []string
	Each2(a, b, func(_ EntityID, _ *pos, tg *tag) { names = append(names, tg.Name) })
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("names = %v, want [a c]", names)
	}
}

func TestWorldDeferredDestroyRunsHooksOnce(t *testing.T) {
	w := NewWorld()
	positions := Bind[pos](w.Registry())
	id := w.CreateEntity()
	positions.Set(id, &pos{})

	var released []EntityID
	w.OnDestroy(func(id EntityID) { released = append(released, id) })

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if !w.Pending(id) {
		t.Fatal("entity not pending after mark")
	}
	if positions.Len() != 1 {
		t.Fatal("components dropped before flush")
	}
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Fatalf("flushed %d entities, want 1", n)
	}
	if len(released) != 1 {
		t.Fatalf("hook ran %d times, want 1", len(released))
	}
	if positions.Len() != 0 || w.Alive(id) {
		t.Fatal("entity not fully destroyed")
	}

	// Marking a dead entity is ignored.
	w.MarkForDestruction(id)
	if w.FlushDestroyQueue() != 0 {
		t.Fatal("dead entity destroyed twice")
	}
}

func TestWorldDestroyAll(t *testing.T) {
	w := NewWorld()
	positions := Bind[pos](w.Registry())
	for range 4 {
		positions.Set(w.CreateEntity(), &pos{})
	}
	hooks := 0
	w.OnDestroy(func(EntityID) { hooks++ })
	w.DestroyAll(positions.IDs())
	if hooks != 4 {
		t.Fatalf("hooks = %d, want 4", hooks)
	}
	if positions.Len() != 0 || w.Pool().Live() != 0 {
		t.Fatal("world not empty after DestroyAll")
	}
}
