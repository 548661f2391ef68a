// Package preview renders a top-down view of planned tiles, as a PNG for
// the command line and as an interactive chart for the web UI.
package preview

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/scene"
)

// Options control both renderings.
type Options struct {
	Title  string
	Origin mgl64.Vec3        // rig origin, drawn as a marker
	Colors map[string]string // instrument id → "#rrggbb"
}

const defaultColor = "#888888"

// group splits tiles per instrument. Ids are returned sorted so the legend
// order does not depend on map iteration.
func group(tiles []planner.Tile) ([]string, map[string][]planner.Tile) {
	byID := make(map[string][]planner.Tile)
	for _, t := range tiles {
		byID[t.InstrumentID] = append(byID[t.InstrumentID], t)
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, byID
}

// outline returns the tile's corners projected on the ground plane (x, z),
// closed by repeating the first corner.
func outline(t planner.Tile) [5][2]float64 {
	q := scene.TileQuad(t)
	var out [5][2]float64
	for i := 0; i < 5; i++ {
		c := q[i%4]
		out[i] = [2]float64{c.X(), c.Z()}
	}
	return out
}

func (o Options) hex(id string) string {
	if c, ok := o.Colors[id]; ok && c != "" {
		return c
	}
	return defaultColor
}

// ParseHex converts "#rrggbb" to an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
