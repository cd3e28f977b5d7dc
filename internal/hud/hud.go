// Package hud formats the heads-up text drawn over the game: score, the "+1"
// flash, the pause overlay, the game-over screen and the start menu.
package hud

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// FlashDuration is how long "+1" stays up after the score rises.
const FlashDuration = 500 * time.Millisecond

// Message keys.
const (
	keyScore      = "score"
	keyFlash      = "flash"
	keyPaused     = "paused"
	keyPauseHint  = "pause_hint"
	keyGameOver   = "game_over"
	keyFinal      = "final_score"
	keyOverHint   = "over_hint"
	keyTitle      = "title"
	keyStartHint  = "start_hint"
	keyPlayHint   = "play_hint"
	keyDifficulty = "difficulty"
	keyEasy       = "easy"
	keyMedium     = "medium"
	keyHard       = "hard"
)

var supported = []language.Tag{language.Russian, language.English}

var messages = map[language.Tag]map[string]string{
	language.Russian: {
		keyScore:      "Счёт: %d",
		keyFlash:      "+1",
		keyPaused:     "ПАУЗА",
		keyPauseHint:  "P: продолжить  M: меню  R: заново",
		keyGameOver:   "ИГРА ОКОНЧЕНА",
		keyFinal:      "Итоговый счёт: %d",
		keyOverHint:   "R: заново  M: меню  Q: выход",
		keyTitle:      "Финансовый забег",
		keyStartHint:  "←/→: сложность  Enter: старт  Q: выход",
		keyPlayHint:   "←/→ или A/D: полоса  P: пауза",
		keyDifficulty: "Сложность: %s",
		keyEasy:       "лёгкая",
		keyMedium:     "средняя",
		keyHard:       "сложная",
	},
	language.English: {
		keyScore:      "Score: %d",
		keyFlash:      "+1",
		keyPaused:     "PAUSED",
		keyPauseHint:  "P: resume  M: menu  R: restart",
		keyGameOver:   "GAME OVER",
		keyFinal:      "Final score: %d",
		keyOverHint:   "R: restart  M: menu  Q: quit",
		keyTitle:      "Money Run",
		keyStartHint:  "←/→: difficulty  Enter: start  Q: quit",
		keyPlayHint:   "←/→ or A/D: lane  P: pause",
		keyDifficulty: "Difficulty: %s",
		keyEasy:       "easy",
		keyMedium:     "medium",
		keyHard:       "hard",
	},
}

func newCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("hud catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// HUD renders localized overlay strings and tracks the score flash.
type HUD struct {
	tag language.Tag
	p   *message.Printer

	score      int
	flashUntil time.Duration
	flashing   bool
}

// New returns a HUD for the closest supported match to lang. An unparseable
// tag falls back to English.
func New(lang string) (*HUD, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	want, err := language.Parse(lang)
	if err != nil {
		want = language.English
	}
	_, idx, _ := language.NewMatcher(supported).Match(want)
	tag := supported[idx]
	return &HUD{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}, nil
}

// Language returns the tag strings are printed in.
func (h *HUD) Language() language.Tag { return h.tag }

// Reset clears the score and any flash, for a new session.
func (h *HUD) Reset() {
	h.score = 0
	h.flashing = false
}

// ScoreChanged records a new score at time now. A rise starts the flash.
func (h *HUD) ScoreChanged(score int, now time.Duration) {
	if score > h.score {
		h.flashing = true
		h.flashUntil = now + FlashDuration
	}
	h.score = score
}

// Flash returns the flash text while it is showing at time now.
func (h *HUD) Flash(now time.Duration) (string, bool) {
	if !h.flashing || now >= h.flashUntil {
		h.flashing = false
		return "", false
	}
	return h.p.Sprintf(keyFlash), true
}

func (h *HUD) Score() string          { return h.p.Sprintf(keyScore, h.score) }
func (h *HUD) Paused() string         { return h.p.Sprintf(keyPaused) }
func (h *HUD) PauseHint() string      { return h.p.Sprintf(keyPauseHint) }
func (h *HUD) GameOver() string       { return h.p.Sprintf(keyGameOver) }
func (h *HUD) Final(score int) string { return h.p.Sprintf(keyFinal, score) }
func (h *HUD) OverHint() string       { return h.p.Sprintf(keyOverHint) }
func (h *HUD) Title() string          { return h.p.Sprintf(keyTitle) }
func (h *HUD) StartHint() string      { return h.p.Sprintf(keyStartHint) }
func (h *HUD) PlayHint() string       { return h.p.Sprintf(keyPlayHint) }

// Difficulty labels a preset name; unknown names are shown as given.
func (h *HUD) Difficulty(name string) string {
	label := name
	switch name {
	case keyEasy, keyMedium, keyHard:
		label = h.p.Sprintf(name)
	}
	return h.p.Sprintf(keyDifficulty, label)
}
