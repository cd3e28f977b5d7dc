package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// tone is a sine or square oscillator with a linear attack/release envelope.
type tone struct {
	freq    float64
	square  bool
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

func newTone(freq float64, d, attack, release time.Duration, square bool, rate beep.SampleRate) *tone {
	return &tone{
		freq:    freq,
		square:  square,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * t.phase)
		if t.square {
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		}
		v *= t.gain()
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }

// volume scales s linearly; 0 or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// ScoreSound is a short rising two-note chime.
func ScoreSound(vol float64) beep.Streamer {
	first := newTone(660, 70*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, false, sampleRate)
	second := newTone(990, 110*time.Millisecond, 5*time.Millisecond, 80*time.Millisecond, false, sampleRate)
	return volume(beep.Seq(first, second), vol)
}

// GameOverSound is a falling three-note square buzz.
func GameOverSound(vol float64) beep.Streamer {
	notes := []float64{392, 311, 196}
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = newTone(f, 180*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond, true, sampleRate)
	}
	return volume(beep.Seq(parts...), vol*0.6)
}

// PickupSound is a quick high sparkle for a decorative cash burst.
func PickupSound(vol float64) beep.Streamer {
	return volume(newTone(1760, 40*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, false, sampleRate), vol*0.4)
}

// LaneSound is a soft tick for an accepted lane change.
func LaneSound(vol float64) beep.Streamer {
	return volume(newTone(1320, 25*time.Millisecond, 2*time.Millisecond, 15*time.Millisecond, false, sampleRate), vol*0.3)
}
