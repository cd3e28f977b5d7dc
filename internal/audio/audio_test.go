package audio

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/config"
)

func drain(t *testing.T, name string, s interface {
	Stream([][2]float64) (int, bool)
}) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("%s: sample %d out of range: %v", name, total+j, buf[j][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("%s never ended", name)
	return 0
}

func TestToneLengthAndEnvelope(t *testing.T) {
	tn := newTone(440, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, false, sampleRate)
	if n := drain(t, "tone", tn); n != sampleRate.N(100*time.Millisecond) {
		t.Fatalf("samples = %d, want %d", n, sampleRate.N(100*time.Millisecond))
	}

	sq := newTone(100, 50*time.Millisecond, 0, 0, true, sampleRate)
	buf := make([][2]float64, 64)
	sq.Stream(buf)
	for _, s := range buf {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("square sample %v", s[0])
		}
	}
}

func TestCuesEnd(t *testing.T) {
	drain(t, "score", ScoreSound(0.5))
	drain(t, "game over", GameOverSound(0.5))
	drain(t, "lane", LaneSound(0.5))
	drain(t, "pickup", PickupSound(0.5))
	drain(t, "silent", ScoreSound(0))
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Enabled: false, Volume: 1}, zap.NewNop())
	if p.Active() {
		t.Fatal("disabled player is active")
	}
	p.Score()
	p.GameOver()
	p.Lane()
	p.Pickup()
	p.Close()
}
