package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LayerDef describes one parallax layer and its wrap rule.
type LayerDef struct {
	Name         string  `yaml:"name"`
	Factor       float64 `yaml:"factor"`
	FactorJitter float64 `yaml:"factor_jitter"` // per-tile factor varies by ±FactorJitter
	Threshold    float64 `yaml:"threshold"`
	Span         float64 `yaml:"span"`
	Jitter       float64 `yaml:"jitter"`
	BandMin      float64 `yaml:"band_min"`
	BandMax      float64 `yaml:"band_max"`
}

// Placement modes.
const (
	ModeRow     = "row"
	ModeScatter = "scatter"
	ModeCluster = "cluster"
)

// MemberSpec shapes the members of each cluster tile.
type MemberSpec struct {
	Count       int      `yaml:"count"`
	Kinds       []string `yaml:"kinds"`        // drawn uniformly; repeat a kind to weight it
	XSpread     float64  `yaml:"x_spread"`     // members sit within ±XSpread of the cluster x
	Depth       float64  `yaml:"depth"`        // members sit within DepthOffset-Depth..DepthOffset
	DepthOffset float64  `yaml:"depth_offset"`
}

// PlacementDef expands into one or more tiles at scene build.
type PlacementDef struct {
	Kind     string      `yaml:"kind"`
	Layer    string      `yaml:"layer"`
	Mode     string      `yaml:"mode"`
	X        []float64   `yaml:"x"`
	ZOffsets []float64   `yaml:"z_offsets"` // parallel to X
	OneSide  bool        `yaml:"one_side"`  // place at one random x per slot instead of all
	Chance   float64     `yaml:"chance"`    // per-slot probability; 0 means always
	XJitter  float64     `yaml:"x_jitter"`  // random shift toward the road, [0, XJitter)
	Y        float64     `yaml:"y"`
	ZFrom    float64     `yaml:"z_from"`
	ZTo      float64     `yaml:"z_to"`
	Step     float64     `yaml:"step"`
	ZJitter  float64     `yaml:"z_jitter"` // [0, ZJitter) added to z
	Count    int         `yaml:"count"`    // scatter only
	Lanes    bool        `yaml:"lanes"`    // scatter x from the lane table
	XRange   []float64   `yaml:"x_range"`  // scatter x when not on lanes
	YRange   []float64   `yaml:"y_range"`  // scatter y; overrides Y
	Pickup   bool        `yaml:"pickup"`
	Spin     []float64   `yaml:"spin"` // [min, max) spin rate, rad/s
	Members  *MemberSpec `yaml:"members"`
}

// Layout is the full scene description: layers plus placements.
type Layout struct {
	Layers     []LayerDef     `yaml:"layers"`
	Placements []PlacementDef `yaml:"placements"`

	byName map[string]*LayerDef
}

var ErrBadLayout = errors.New("invalid layout")

// LoadLayout loads a scene layout from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(raw)
}

// ParseLayout decodes and checks a layout.
func ParseLayout(raw []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(l.Layers) == 0 {
		return nil, fmt.Errorf("layout: layers: %w", ErrEmptyTable)
	}
	l.byName = make(map[string]*LayerDef, len(l.Layers))
	for i := range l.Layers {
		ld := &l.Layers[i]
		if ld.Name == "" {
			return nil, fmt.Errorf("%w: layer %d has no name", ErrBadLayout, i)
		}
		if _, dup := l.byName[ld.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate layer %q", ErrBadLayout, ld.Name)
		}
		if ld.Factor <= 0 || ld.Span <= 0 {
			return nil, fmt.Errorf("%w: layer %q needs positive factor and span", ErrBadLayout, ld.Name)
		}
		l.byName[ld.Name] = ld
	}
	for i := range l.Placements {
		if err := l.checkPlacement(&l.Placements[i]); err != nil {
			return nil, fmt.Errorf("placement %d (%s): %w", i, l.Placements[i].Kind, err)
		}
	}
	return &l, nil
}

func (l *Layout) checkPlacement(p *PlacementDef) error {
	if p.Kind == "" {
		return fmt.Errorf("%w: kind is required", ErrBadLayout)
	}
	if _, ok := l.byName[p.Layer]; !ok {
		return fmt.Errorf("%w: unknown layer %q", ErrBadLayout, p.Layer)
	}
	if p.Mode == "" {
		p.Mode = ModeRow
	}
	if p.ZTo <= p.ZFrom {
		return fmt.Errorf("%w: z_to must exceed z_from", ErrBadLayout)
	}
	if len(p.ZOffsets) > 0 && len(p.ZOffsets) != len(p.X) {
		return fmt.Errorf("%w: z_offsets must match x", ErrBadLayout)
	}
	if len(p.Spin) != 0 && len(p.Spin) != 2 {
		return fmt.Errorf("%w: spin needs [min, max]", ErrBadLayout)
	}
	switch p.Mode {
	case ModeRow, ModeCluster:
		if p.Step <= 0 || len(p.X) == 0 {
			return fmt.Errorf("%w: %s needs x and a positive step", ErrBadLayout, p.Mode)
		}
		if p.Mode == ModeCluster && (p.Members == nil || p.Members.Count <= 0 || len(p.Members.Kinds) == 0) {
			return fmt.Errorf("%w: cluster needs members", ErrBadLayout)
		}
	case ModeScatter:
		if p.Count <= 0 {
			return fmt.Errorf("%w: scatter needs a count", ErrBadLayout)
		}
		if !p.Lanes && len(p.XRange) != 2 {
			return fmt.Errorf("%w: scatter needs lanes or x_range", ErrBadLayout)
		}
		if len(p.YRange) != 0 && len(p.YRange) != 2 {
			return fmt.Errorf("%w: y_range needs [min, max]", ErrBadLayout)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrBadLayout, p.Mode)
	}
	return nil
}

// Layer returns the named layer definition, or nil.
func (l *Layout) Layer(name string) *LayerDef {
	if l.byName == nil {
		return nil
	}
	return l.byName[name]
}

// Count returns the number of placements.
func (l *Layout) Count() int {
	return len(l.Placements)
}
