package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := range 100 {
		if x, y := a.Float(), b.Float(); x != y {
			t.Fatalf("draw %d diverged: %v vs %v", i, x, y)
		}
	}
}

func TestDeriveIsIndependentOfParentDraws(t *testing.T) {
	a := New(7)
	b := New(7)
	b.Float()
	b.Float()
	if a.Derive(3).Float() != b.Derive(3).Float() {
		t.Fatal("derived stream depends on parent draw count")
	}
	if a.Derive(3).Float() == a.Derive(4).Float() {
		t.Fatal("different salts produced identical streams")
	}
}

func TestRanges(t *testing.T) {
	r := New(99)
	for range 1000 {
		if v := r.RangeF(-2, 3); v < -2 || v >= 3 {
			t.Fatalf("RangeF out of range: %v", v)
		}
		if v := r.Centered(0.5); v < -0.5 || v >= 0.5 {
			t.Fatalf("Centered out of range: %v", v)
		}
		if v := r.Intn(3); v < 0 || v > 2 {
			t.Fatalf("Intn out of range: %v", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Fatal("Intn(0) must be 0")
	}
}

func TestChanceDistribution(t *testing.T) {
	r := New(2024)
	hits := 0
	const n = 20000
	for range n {
		if r.Chance(0.6) {
			hits++
		}
	}
	ratio := float64(hits) / n
	if ratio < 0.58 || ratio > 0.62 {
		t.Fatalf("Chance(0.6) ratio = %.3f", ratio)
	}
}
