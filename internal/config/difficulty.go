package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Difficulty is the per-session configuration chosen before Start.
type Difficulty struct {
	Name          string
	Speed         float64       // base scroll speed
	SpawnInterval time.Duration // time between item spawns
	LanePositions []float64     // lateral x of each lane, left to right
}

var ErrInvalidDifficulty = errors.New("invalid difficulty")

func (d Difficulty) LaneCount() int { return len(d.LanePositions) }

// MiddleLane is the lane a session starts on.
func (d Difficulty) MiddleLane() int { return len(d.LanePositions) / 2 }

func (d Difficulty) Validate() error {
	if d.Speed <= 0 {
		return fmt.Errorf("%w %q: speed must be positive", ErrInvalidDifficulty, d.Name)
	}
	if d.SpawnInterval <= 0 {
		return fmt.Errorf("%w %q: spawn interval must be positive", ErrInvalidDifficulty, d.Name)
	}
	if len(d.LanePositions) == 0 {
		return fmt.Errorf("%w %q: no lanes", ErrInvalidDifficulty, d.Name)
	}
	for i := 1; i < len(d.LanePositions); i++ {
		if d.LanePositions[i] <= d.LanePositions[i-1] {
			return fmt.Errorf("%w %q: lane positions must increase left to right", ErrInvalidDifficulty, d.Name)
		}
	}
	return nil
}

// Clone returns a copy that does not share the lane slice.
func (d Difficulty) Clone() Difficulty {
	d.LanePositions = append([]float64(nil), d.LanePositions...)
	return d
}

var defaultLanes = []float64{-4, 0, 4}

// Presets returns the built-in difficulty table.
func Presets() map[string]Difficulty {
	return map[string]Difficulty{
		"easy":   {Name: "easy", Speed: 2, SpawnInterval: 3000 * time.Millisecond, LanePositions: append([]float64(nil), defaultLanes...)},
		"medium": {Name: "medium", Speed: 3, SpawnInterval: 2500 * time.Millisecond, LanePositions: append([]float64(nil), defaultLanes...)},
		"hard":   {Name: "hard", Speed: 4, SpawnInterval: 2000 * time.Millisecond, LanePositions: append([]float64(nil), defaultLanes...)},
	}
}

// PresetNames returns preset names ordered by speed, slowest first.
func PresetNames(presets map[string]Difficulty) []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := presets[names[i]], presets[names[j]]
		if a.Speed != b.Speed {
			return a.Speed < b.Speed
		}
		return names[i] < names[j]
	})
	return names
}

// Lookup returns the named preset.
func Lookup(presets map[string]Difficulty, name string) (Difficulty, error) {
	d, ok := presets[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidDifficulty, name)
	}
	return d.Clone(), nil
}
