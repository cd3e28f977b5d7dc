// layoutcheck validates a scene layout and item table and prints what one
// session would build from them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/scene"
	"github.com/finlit/lanerun/internal/world"
)

func main() {
	layoutPath := flag.String("layout", "", "layout YAML (default: built-in)")
	itemsPath := flag.String("items", "", "item table YAML (default: built-in)")
	seed := flag.Uint64("seed", 1, "scene seed")
	flag.Parse()

	if err := check(os.Stdout, *layoutPath, *itemsPath, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(w io.Writer, layoutPath, itemsPath string, seed uint64) error {
	layout, err := data.LayoutOrDefault(layoutPath)
	if err != nil {
		return err
	}
	items, err := data.ItemsOrDefault(itemsPath)
	if err != nil {
		return err
	}
	if err := scene.CheckBands(layout); err != nil {
		return err
	}

	st := world.NewState(config.Presets()["medium"], config.DefaultTuning())
	stats, err := scene.Build(st, layout, rng.New(seed))
	if err != nil {
		return err
	}

	perLayer := make(map[string]int)
	st.Tiles.Each(func(_ ecs.EntityID, t *component.Tile) {
		perLayer[t.Layer]++
	})
	layers := make([]string, 0, len(perLayer))
	for name := range perLayer {
		layers = append(layers, name)
	}
	sort.Strings(layers)

	fmt.Fprintf(w, "items: %d good, %d bad\n",
		len(items.Kind(component.KindGood)), len(items.Kind(component.KindBad)))
	fmt.Fprintf(w, "placements: %d\n", layout.Count())
	for _, name := range layers {
		fmt.Fprintf(w, "  %-10s %d tiles\n", name, perLayer[name])
	}
	fmt.Fprintf(w, "total: %d tiles, %d clusters, %d pickups, %d spinners\n",
		stats.Tiles, stats.Clusters, stats.Pickups, stats.Spinners)
	return nil
}
