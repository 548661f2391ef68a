package preview

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cjeanneret/PanCam/internal/logic/planner"
)

// Chart builds an interactive scatter of tile centres on the ground plane,
// one series per instrument plus the rig origin.
func Chart(tiles []planner.Tile, o Options) *charts.Scatter {
	title := o.Title
	if title == "" {
		title = "Panorama coverage"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("tiles=%d", len(tiles))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
	)

	ids, byID := group(tiles)
	for _, id := range ids {
		data := make([]opts.ScatterData, 0, len(byID[id]))
		for _, t := range byID[id] {
			data = append(data, opts.ScatterData{
				Name:  fmt.Sprintf("%s #%d pan=%.1f°", id, t.CaptureIndex, t.CapturePanDeg),
				Value: []interface{}{t.Position.X(), t.Position.Z(), t.Width},
			})
		}
		scatter.AddSeries(id, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: o.hex(id)}),
		)
	}
	scatter.AddSeries("rig", []opts.ScatterData{{Name: "rig", Value: []interface{}{o.Origin.X(), o.Origin.Z()}}},
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#222222"}),
	)
	return scatter
}

// WriteHTML renders the chart page to w.
func WriteHTML(w io.Writer, tiles []planner.Tile, o Options) error {
	if err := Chart(tiles, o).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
