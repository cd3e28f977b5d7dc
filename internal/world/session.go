package world

import "time"

// Session is the scoreboard of one run. Score is frozen once Running is false.
type Session struct {
	Score       int
	Running     bool
	StartedAt   time.Duration
	LastSpawnAt time.Duration
	Spawned     int // items created so far; zero means the first spawn is due
	Over        bool
}

// AddPoint increments the score while the run is live and reports the new
// value. A stopped session keeps its score.
func (s *Session) AddPoint() (int, bool) {
	if !s.Running {
		return s.Score, false
	}
	s.Score++
	return s.Score, true
}

// End freezes the session. It reports false if it was already over.
func (s *Session) End() bool {
	if s.Over {
		return false
	}
	s.Over = true
	s.Running = false
	return true
}

// Elapsed returns how long the run has lasted at now.
func (s *Session) Elapsed(now time.Duration) time.Duration {
	return now - s.StartedAt
}

// SpawnDue reports whether a new item should be created at now.
func (s *Session) SpawnDue(now, interval time.Duration) bool {
	if s.Spawned == 0 {
		return true
	}
	return now-s.LastSpawnAt >= interval
}
