package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/config"
)

// Player plays game cues through the system speaker. A disabled player, or one
// whose speaker failed to open, accepts every call and stays silent.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	active bool
	log    *zap.Logger
}

// NewPlayer opens the speaker when cfg.Enabled is set.
func NewPlayer(cfg config.AudioConfig, log *zap.Logger) *Player {
	p := &Player{mixer: &beep.Mixer{}, volume: cfg.Volume, log: log}
	if !cfg.Enabled {
		return p
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return p
	}
	speaker.Play(p.mixer)
	p.active = true
	return p
}

// Active reports whether sound reaches the speaker.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Player) Score()    { p.play(ScoreSound(p.volume)) }
func (p *Player) GameOver() { p.play(GameOverSound(p.volume)) }
func (p *Player) Lane()     { p.play(LaneSound(p.volume)) }
func (p *Player) Pickup()   { p.play(PickupSound(p.volume)) }

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything queued. The speaker itself stays open for the
// life of the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.active = false
}
