package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/finlit/lanerun/internal/component"
)

type glyph struct {
	r     rune
	style tcell.Style
}

var (
	styleSky        = tcell.StyleDefault.Background(tcell.NewRGBColor(10, 14, 30))
	styleDivider    = styleSky.Foreground(tcell.NewRGBColor(200, 200, 200))
	styleRoadEdge   = styleSky.Foreground(tcell.NewRGBColor(120, 120, 120))
	styleParticle   = styleSky.Foreground(tcell.NewRGBColor(255, 215, 0))
	styleAvatar     = styleSky.Foreground(tcell.NewRGBColor(80, 160, 255))
	styleAvatarHead = styleSky.Foreground(tcell.NewRGBColor(255, 220, 180)).Bold(true)
	styleHUD        = styleSky.Foreground(tcell.ColorWhite)
	styleFlash      = styleSky.Foreground(tcell.ColorGreen).Bold(true)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(255, 215, 0)).Bold(true)
	styleHint       = styleSky.Foreground(tcell.NewRGBColor(140, 140, 160))
	styleSelected   = styleSky.Foreground(tcell.ColorYellow).Bold(true)
)

var tileGlyphs = map[string]glyph{
	"dash":          {'-', styleSky.Foreground(tcell.ColorWhite)},
	"streetlight":   {'|', styleSky.Foreground(tcell.NewRGBColor(255, 240, 180))},
	"billboard":     {'#', styleSky.Foreground(tcell.NewRGBColor(255, 80, 160))},
	"led":           {'=', styleSky.Foreground(tcell.NewRGBColor(0, 255, 255))},
	"atm":           {'A', styleSky.Foreground(tcell.NewRGBColor(60, 200, 90))},
	"house":         {'^', styleSky.Foreground(tcell.NewRGBColor(190, 120, 80))},
	"shop":          {'S', styleSky.Foreground(tcell.NewRGBColor(230, 180, 60))},
	"tree":          {'T', styleSky.Foreground(tcell.NewRGBColor(40, 160, 60))},
	"bench":         {'_', styleSky.Foreground(tcell.NewRGBColor(150, 100, 60))},
	"bin":           {'u', styleSky.Foreground(tcell.NewRGBColor(110, 110, 110))},
	"traffic_light": {'!', styleSky.Foreground(tcell.ColorRed)},
	"sign":          {'>', styleSky.Foreground(tcell.NewRGBColor(70, 120, 255))},
	"cash":          {'$', styleSky.Foreground(tcell.NewRGBColor(133, 187, 101))},
	"floating_cash": {'$', styleSky.Foreground(tcell.NewRGBColor(160, 220, 120)).Bold(true)},
}

var layerGlyphs = map[string]glyph{
	"forest":  {'A', styleSky.Foreground(tcell.NewRGBColor(20, 90, 40))},
	"skyline": {'H', styleSky.Foreground(tcell.NewRGBColor(70, 70, 110))},
}

var fallbackGlyph = glyph{'?', styleSky.Foreground(tcell.ColorGray)}

func tileGlyph(kind, layer string) glyph {
	if g, ok := tileGlyphs[kind]; ok {
		return g
	}
	if g, ok := layerGlyphs[layer]; ok {
		return g
	}
	return fallbackGlyph
}

// memberGlyph styles one member of a cluster; unknown member kinds take the
// cluster's own look.
func memberGlyph(kind string, cluster glyph) glyph {
	switch kind {
	case "pine":
		return glyph{'A', cluster.style}
	case "broadleaf":
		return glyph{'T', cluster.style}
	case "building":
		return glyph{'H', cluster.style}
	case "tower":
		return glyph{'I', cluster.style}
	}
	return cluster
}

func itemGlyph(kind component.ItemKind, color uint32) glyph {
	style := styleSky.Foreground(tcell.NewHexColor(int32(color & 0xFFFFFF))).Bold(true)
	if kind == component.KindGood {
		return glyph{'$', style}
	}
	return glyph{'X', style}
}
