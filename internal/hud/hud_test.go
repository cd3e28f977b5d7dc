package hud

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestLanguageMatching(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"ru", language.Russian},
		{"ru-RU", language.Russian},
		{"en", language.English},
		{"en-GB", language.English},
		{"not a tag", language.English},
	}
	for _, tt := range tests {
		h, err := New(tt.in)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.in, err)
		}
		if base, _ := h.Language().Base(); base != mustBase(tt.want) {
			t.Errorf("New(%q) language = %v, want %v", tt.in, h.Language(), tt.want)
		}
	}
}

func mustBase(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

func TestStrings(t *testing.T) {
	en, _ := New("en")
	ru, _ := New("ru")

	en.ScoreChanged(7, 0)
	ru.ScoreChanged(7, 0)
	if got := en.Score(); got != "Score: 7" {
		t.Errorf("en score = %q", got)
	}
	if got := ru.Score(); got != "Счёт: 7" {
		t.Errorf("ru score = %q", got)
	}
	if got := en.Final(12); got != "Final score: 12" {
		t.Errorf("en final = %q", got)
	}
	if got := en.Difficulty("hard"); got != "Difficulty: hard" {
		t.Errorf("en difficulty = %q", got)
	}
	if got := ru.Difficulty("easy"); got != "Сложность: лёгкая" {
		t.Errorf("ru difficulty = %q", got)
	}
	if got := en.Difficulty("nightmare"); got != "Difficulty: nightmare" {
		t.Errorf("unknown difficulty = %q", got)
	}
	if en.Paused() == ru.Paused() {
		t.Error("paused text not localized")
	}
}

func TestFlashWindow(t *testing.T) {
	h, _ := New("en")
	if _, ok := h.Flash(0); ok {
		t.Fatal("flash before any score")
	}

	h.ScoreChanged(1, time.Second)
	if s, ok := h.Flash(time.Second + 100*time.Millisecond); !ok || s != "+1" {
		t.Fatalf("flash = %q, %v", s, ok)
	}
	if _, ok := h.Flash(time.Second + FlashDuration - time.Millisecond); !ok {
		t.Fatal("flash ended early")
	}
	if _, ok := h.Flash(time.Second + FlashDuration); ok {
		t.Fatal("flash outlived its window")
	}

	// A non-increase does not flash.
	h.ScoreChanged(1, 2*time.Second)
	if _, ok := h.Flash(2 * time.Second); ok {
		t.Fatal("flash without a rise")
	}

	h.ScoreChanged(2, 3*time.Second)
	h.Reset()
	if _, ok := h.Flash(3 * time.Second); ok {
		t.Fatal("flash survived reset")
	}
	if got := h.Score(); got != "Score: 0" {
		t.Fatalf("score after reset = %q", got)
	}
}
