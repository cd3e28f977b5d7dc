package event

import "github.com/finlit/lanerun/internal/core/ecs"

// ScoreChanged is emitted once per good item consumed.
type ScoreChanged struct {
	Score int
}

// GameOver is emitted once per session, when a hazard is consumed.
type GameOver struct {
	FinalScore int
	Hazard     ecs.EntityID
}

// ItemSpawned is emitted when the spawner places a scoring item.
type ItemSpawned struct {
	Item ecs.EntityID
	Lane int
	Good bool
}

// ItemPassed is emitted when an item leaves through the viewer plane unconsumed.
type ItemPassed struct {
	Item ecs.EntityID
}

// BurstSpawned is emitted when a decorative pickup bursts into particles.
type BurstSpawned struct {
	Burst  ecs.EntityID
	Pickup ecs.EntityID
}
