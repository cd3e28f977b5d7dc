package component

import "github.com/finlit/lanerun/internal/vmath"

// Tile is a recurring environment piece. It is created once per session and
// only ever repositioned by the recycler.
type Tile struct {
	Kind      string  // visual identity: "dash", "streetlight", "forest", ...
	Layer     string  // parallax layer name
	Factor    float64 // scroll speed relative to the session base speed
	Threshold float64 // z past which the tile wraps
	Span      float64 // distance subtracted on wrap
	Jitter    float64 // extra random distance added to Span on wrap, [0, Jitter)
	Wraps     int     // number of times the tile has wrapped
}

// Member is one piece of a cluster, placed relative to the cluster origin.
type Member struct {
	Kind   string
	Offset vmath.Vec3
	Scale  float64
}

// Cluster groups members that move and wrap as a single tile.
type Cluster struct {
	Members []Member
}
