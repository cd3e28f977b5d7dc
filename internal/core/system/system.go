package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseRecycle   Phase = iota // 0: scroll and wrap environment tiles
	PhaseSpawn                  // 1: spawn items, advance them, retire passed ones
	PhaseAvatar                 // 2: lane easing + locomotion phase
	PhaseCollision              // 3: avatar vs items
	PhaseAmbient                // 4: decorative pickups and particle bursts
	PhaseOutput                 // 5: deliver events, submit the frame
	PhaseCleanup                // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseRecycle:
		return "recycle"
	case PhaseSpawn:
		return "spawn"
	case PhaseAvatar:
		return "avatar"
	case PhaseCollision:
		return "collision"
	case PhaseAmbient:
		return "ambient"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every per-tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
