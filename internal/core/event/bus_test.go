package event

import "testing"

func TestFlushDeliversInEmissionOrder(t *testing.T) {
	b := NewBus()
	var log []string
	Subscribe(b, func(e ScoreChanged) { log = append(log, "score") })
	Subscribe(b, func(e GameOver) { log = append(log, "over") })

	Emit(b, ScoreChanged{Score: 1})
	Emit(b, ScoreChanged{Score: 2})
	Emit(b, GameOver{FinalScore: 2})

	if len(log) != 0 {
		t.Fatal("events delivered before Flush")
	}
	if n := b.Flush(); n != 3 {
		t.Fatalf("delivered %d, want 3", n)
	}
	want := []string{"score", "score", "over"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
	if b.Flush() != 0 {
		t.Fatal("second flush redelivered events")
	}
}

func TestHandlerEmitsDuringFlush(t *testing.T) {
	b := NewBus()
	got := 0
	Subscribe(b, func(e ItemPassed) { Emit(b, ScoreChanged{Score: 7}) })
	Subscribe(b, func(e ScoreChanged) { got = e.Score })

	Emit(b, ItemPassed{})
	b.Flush()
	if got != 7 {
		t.Fatalf("chained event not delivered in same flush, got %d", got)
	}
}

func TestDrop(t *testing.T) {
	b := NewBus()
	called := false
	Subscribe(b, func(GameOver) { called = true })
	Emit(b, GameOver{})
	b.Drop()
	b.Flush()
	if called {
		t.Fatal("dropped event was delivered")
	}
}

func TestDropDuringFlushStopsDelivery(t *testing.T) {
	b := NewBus()
	var log []string
	Subscribe(b, func(e ScoreChanged) {
		log = append(log, "score")
		b.Drop()
	})
	Subscribe(b, func(e ScoreChanged) { log = append(log, "score-second") })
	Subscribe(b, func(GameOver) { log = append(log, "over") })

	Emit(b, ScoreChanged{Score: 1})
	Emit(b, GameOver{FinalScore: 1})
	if n := b.Flush(); n != 1 {
		t.Fatalf("delivered %d, want 1", n)
	}
	if len(log) != 1 || log[0] != "score" {
		t.Fatalf("log = %v, want [score]", log)
	}
	if b.Pending() != 0 || b.Flush() != 0 {
		t.Fatal("dropped events survived")
	}

	// The bus stays usable after a drop.
	Emit(b, GameOver{})
	if n := b.Flush(); n != 1 || log[len(log)-1] != "over" {
		t.Fatalf("post-drop flush delivered %d, log = %v", n, log)
	}
}
