package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/rng"
)

// ItemDef is one entry of the item table: what a spawned item is called,
// which category it belongs to and how it is drawn.
type ItemDef struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Color    uint32 `yaml:"color"`
}

type itemFile struct {
	Good []ItemDef `yaml:"good"`
	Bad  []ItemDef `yaml:"bad"`
}

// ItemTable holds the good and bad item definitions the spawner draws from.
type ItemTable struct {
	good []ItemDef
	bad  []ItemDef
}

// ErrEmptyTable is returned when a table has no entries for a required kind.
var ErrEmptyTable = errors.New("empty table")

// LoadItemTable loads an item table from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item table: %w", err)
	}
	return ParseItemTable(raw)
}

// ParseItemTable decodes an item table. Both kinds need at least one entry.
func ParseItemTable(raw []byte) (*ItemTable, error) {
	var f itemFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item table: %w", err)
	}
	if len(f.Good) == 0 {
		return nil, fmt.Errorf("item table: good: %w", ErrEmptyTable)
	}
	if len(f.Bad) == 0 {
		return nil, fmt.Errorf("item table: bad: %w", ErrEmptyTable)
	}
	for i, d := range append(append([]ItemDef(nil), f.Good...), f.Bad...) {
		if d.Name == "" || d.Category == "" {
			return nil, fmt.Errorf("item table: entry %d: name and category are required", i)
		}
	}
	return &ItemTable{good: f.Good, bad: f.Bad}, nil
}

// Kind returns the definitions of one kind. The slice must not be modified.
func (t *ItemTable) Kind(k component.ItemKind) []ItemDef {
	if k == component.KindBad {
		return t.bad
	}
	return t.good
}

// Pick returns a uniformly random definition of kind k.
func (t *ItemTable) Pick(k component.ItemKind, r *rng.Rand) ItemDef {
	defs := t.Kind(k)
	return defs[r.Intn(len(defs))]
}

// Count returns the total number of definitions.
func (t *ItemTable) Count() int {
	return len(t.good) + len(t.bad)
}
