// Package tui draws frames on a terminal through tcell. Terminal cells are
// roughly twice as tall as wide, so the surface reports two pixels per row
// and the projection stays close to square.
package tui

import (
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/engine"
	"github.com/finlit/lanerun/internal/hud"
	"github.com/finlit/lanerun/internal/vmath"
)

// burstFade is the burst age after which particles are drawn small.
const burstFade = 2 * time.Second

// RowScale is surface pixels per terminal row.
const RowScale = 2

// TapScale is surface pixels per terminal column for mouse taps, so the tap
// dead zone covers a handful of columns rather than the whole screen.
const TapScale = 10

// Surface implements engine.Surface on a tcell screen.
type Surface struct {
	screen tcell.Screen
	hud    *hud.HUD

	glyphs map[ecs.EntityID]glyph // per-entity look, resolved on first draw
	ops    []drawOp
}

type drawOp struct {
	x, y  int
	depth float64
	r     rune
	style tcell.Style
}

func New(screen tcell.Screen, h *hud.HUD) *Surface {
	return &Surface{
		screen: screen,
		hud:    h,
		glyphs: make(map[ecs.EntityID]glyph),
	}
}

func (s *Surface) Size() (int, int) {
	w, h := s.screen.Size()
	return w, h * RowScale
}

// Release drops the cached look of a destroyed entity.
func (s *Surface) Release(id ecs.EntityID) {
	delete(s.glyphs, id)
}

// Cached reports how many entities currently have a cached look.
func (s *Surface) Cached() int { return len(s.glyphs) }

// Render paints f back to front: ground, tiles/items/bursts by depth, the
// runner and finally the HUD.
func (s *Surface) Render(f *engine.Frame) {
	s.screen.Fill(' ', styleSky)
	p := f.Projection

	s.drawGround(p, f.Lanes)

	s.ops = s.ops[:0]
	for i := range f.Tiles {
		t := &f.Tiles[i]
		g := s.lookup(t.ID, func() glyph { return tileGlyph(t.Kind, t.Layer) })
		if len(t.Members) == 0 {
			s.add(p, t.Pos, g.r, g.style)
			continue
		}
		for _, m := range t.Members {
			mg := memberGlyph(m.Kind, g)
			s.add(p, t.Pos.Add(m.Offset), mg.r, mg.style)
		}
	}
	for i := range f.Items {
		it := &f.Items[i]
		g := s.lookup(it.ID, func() glyph { return itemGlyph(it.Kind, it.Color) })
		s.add(p, it.Pos, g.r, g.style)
	}
	for _, b := range f.Bursts {
		r := '*'
		if b.Age >= burstFade {
			r = '.'
		}
		for _, pos := range b.Particles {
			s.add(p, pos, r, styleParticle)
		}
	}
	slices.SortStableFunc(s.ops, func(a, b drawOp) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	for _, op := range s.ops {
		s.screen.SetContent(op.x, op.y, op.r, nil, op.style)
	}

	s.drawAvatar(p, f.Avatar)
	s.drawHUD(f)
	s.screen.Show()
}

func (s *Surface) lookup(id ecs.EntityID, build func() glyph) glyph {
	g, ok := s.glyphs[id]
	if !ok {
		g = build()
		s.glyphs[id] = g
	}
	return g
}

func (s *Surface) add(p engine.Projection, pos vmath.Vec3, r rune, style tcell.Style) {
	x, y, depth, ok := p.Project(pos)
	if !ok {
		return
	}
	col, row := int(x), int(y)/RowScale
	w, h := s.screen.Size()
	if col < 0 || col >= w || row < 0 || row >= h {
		return
	}
	s.ops = append(s.ops, drawOp{x: col, y: row, depth: depth, r: r, style: style})
}

// plot draws directly, skipping the depth sort.
func (s *Surface) plot(p engine.Projection, pos vmath.Vec3, r rune, style tcell.Style) {
	x, y, _, ok := p.Project(pos)
	if !ok {
		return
	}
	s.screen.SetContent(int(x), int(y)/RowScale, r, nil, style)
}

// Ground is drawn as lane dividers and road edges, sampled along z.
const (
	groundNear = 6.0
	groundFar  = -160.0
	groundStep = 1.5
	roadMargin = 2.0
)

func (s *Surface) drawGround(p engine.Projection, lanes []float64) {
	if len(lanes) == 0 {
		return
	}
	var lines []float64
	lines = append(lines, lanes[0]-roadMargin)
	for i := 1; i < len(lanes); i++ {
		lines = append(lines, (lanes[i-1]+lanes[i])/2)
	}
	lines = append(lines, lanes[len(lanes)-1]+roadMargin)
	for z := groundNear; z > groundFar; z -= groundStep {
		for i, x := range lines {
			style := styleDivider
			if i == 0 || i == len(lines)-1 {
				style = styleRoadEdge
			}
			s.plot(p, vmath.V(x, 0, z), '.', style)
		}
	}
}

// Runner figure, in scene units relative to the hips.
const (
	headHeight  = 1.0
	torsoHeight = 0.7
	armLength   = 0.55
	legLength   = 1.2
	shoulderGap = 0.5
)

func (s *Surface) drawAvatar(p engine.Projection, a engine.AvatarView) {
	pose := a.Pose
	hip := a.Pos
	lean := vmath.V(0, 0, pose.Lean)

	shoulderY := hip.Y + torsoHeight
	for _, side := range []struct {
		off, arm, elbow, leg, knee float64
	}{
		{pose.Shoulders.Left, pose.Arms.Left, pose.Elbows.Left, pose.Hips.Left, pose.Knees.Left},
		{pose.Shoulders.Right, pose.Arms.Right, pose.Elbows.Right, pose.Hips.Right, pose.Knees.Right},
	} {
		sh := vmath.V(hip.X+side.off*shoulderGap, shoulderY, hip.Z).Add(lean)
		hand := sh.Add(vmath.V(0, -armLength*math.Sin(side.elbow), -armLength*side.arm))
		s.plot(p, hand, '+', styleAvatar)

		foot := vmath.V(hip.X+side.off*0.3, hip.Y-legLength*(1+side.knee*0.3), hip.Z-side.leg*0.5)
		r := '|'
		if side.knee < -0.45 {
			r = '/'
		}
		s.plot(p, foot, r, styleAvatar)
	}
	s.plot(p, hip.Add(vmath.V(0, torsoHeight/2, 0)).Add(lean), '#', styleAvatar)
	s.plot(p, hip.Add(vmath.V(0, headHeight+pose.Tilt, 0)).Add(lean), '@', styleAvatarHead)
}

func (s *Surface) drawHUD(f *engine.Frame) {
	if s.hud == nil {
		return
	}
	w, h := s.screen.Size()
	s.text(1, 0, styleHUD, s.hud.Score())
	if flash, ok := s.hud.Flash(f.Time); ok {
		s.text(len([]rune(s.hud.Score()))+2, 0, styleFlash, flash)
	}
	diff := s.hud.Difficulty(f.Difficulty)
	s.text(w-len([]rune(diff))-1, 0, styleHUD, diff)

	switch f.State {
	case engine.StatePaused:
		s.centre(h/2-1, styleBanner, s.hud.Paused())
		s.centre(h/2+1, styleHUD, s.hud.PauseHint())
	case engine.StateGameOver:
		s.centre(h/2-2, styleBanner, s.hud.GameOver())
		s.centre(h/2, styleHUD, s.hud.Final(f.Score))
		s.centre(h/2+2, styleHUD, s.hud.OverHint())
	default:
		s.text(1, h-1, styleHint, s.hud.PlayHint())
	}
}

// DrawMenu paints the start screen with the preset names and the selected
// one highlighted.
func (s *Surface) DrawMenu(names []string, selected int) {
	s.screen.Fill(' ', styleSky)
	_, h := s.screen.Size()
	top := h/2 - len(names)/2 - 3
	if s.hud != nil {
		s.centre(top, styleBanner, s.hud.Title())
		s.centre(h-2, styleHint, s.hud.StartHint())
	}
	for i, name := range names {
		label := name
		style := styleHUD
		if s.hud != nil {
			label = s.hud.Difficulty(name)
		}
		if i == selected {
			label = "> " + label + " <"
			style = styleSelected
		}
		s.centre(top+2+i, style, label)
	}
	s.screen.Show()
}

func (s *Surface) text(x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (s *Surface) centre(y int, style tcell.Style, str string) {
	w, _ := s.screen.Size()
	s.text((w-len([]rune(str)))/2, y, style, str)
}
var _ engine.Surface = (*Surface)(nil)
