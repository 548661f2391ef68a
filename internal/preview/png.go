package preview

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
)

// PNG size.
const (
	imageWidth  = 8 * vg.Inch
	imageHeight = 8 * vg.Inch
)

// Plot builds the top-down plot: one outline per tile, a centre marker per
// tile and the rig origin.
func Plot(tiles []planner.Tile, o Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	if p.Title.Text == "" {
		p.Title.Text = "Panorama coverage"
	}
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Z (m)"
	p.Add(plotter.NewGrid())

	ids, byID := group(tiles)
	for _, id := range ids {
		col, err := ParseHex(o.hex(id))
		if err != nil {
			return nil, err
		}
		centres := make(plotter.XYs, 0, len(byID[id]))
		for _, t := range byID[id] {
			pts := make(plotter.XYs, 0, 5)
			for _, c := range outline(t) {
				pts = append(pts, plotter.XY{X: c[0], Y: c[1]})
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("tile outline %s#%d: %w", id, t.CaptureIndex, err)
			}
			line.Color = col
			line.Width = vg.Points(1)
			p.Add(line)
			centres = append(centres, plotter.XY{X: t.Position.X(), Y: t.Position.Z()})
		}
		sc, err := plotter.NewScatter(centres)
		if err != nil {
			return nil, fmt.Errorf("tile centres %s: %w", id, err)
		}
		sc.Color = col
		sc.Shape = draw.CircleGlyph{}
		sc.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(id, sc)
	}

	origin, err := plotter.NewScatter(plotter.XYs{{X: o.Origin.X(), Y: o.Origin.Z()}})
	if err != nil {
		return nil, err
	}
	origin.Shape = draw.CrossGlyph{}
	origin.Radius = vg.Points(4)
	p.Add(origin)
	p.Legend.Add("rig", origin)
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders the plot as PNG to w.
func WritePNG(w io.Writer, tiles []planner.Tile, o Options) error {
	p, err := Plot(tiles, o)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(imageWidth, imageHeight, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SavePNG writes the PNG to path.
func SavePNG(path string, tiles []planner.Tile, o Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, tiles, o); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	debug.Info("Preview saved to %s (%d tiles)", path, len(tiles))
	return nil
}
