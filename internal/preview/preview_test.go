package preview

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func plannedTiles(t *testing.T) []planner.Tile {
	t.Helper()
	reg, err := instrument.NewRegistryWith(instrument.Reference())
	require.NoError(t, err)
	p := planner.New(ptu.NewModel(ptu.NewRig(ptu.DefaultBase), reg), planner.DefaultMaxSamples)

	req := planner.DefaultRequest()
	req.StartDeg, req.StopDeg, req.SampleCount = -90, 90, 5
	req.Instruments[instrument.LWAC] = true
	req.Instruments[instrument.RWAC] = true
	return p.Plan(ptu.NewHead(), req, nil)
}

func options() Options {
	return Options{
		Origin: ptu.DefaultBase,
		Colors: map[string]string{instrument.LWAC: "#886666", instrument.RWAC: "#668866"},
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#886666")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x88, G: 0x66, B: 0x66, A: 0xff}, c)

	_, err = ParseHex("red")
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, plannedTiles(t), options()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
}

func TestWritePNG_NoTiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, nil, Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPlot_BadColor(t *testing.T) {
	o := options()
	o.Colors[instrument.LWAC] = "not-a-color"
	_, err := Plot(plannedTiles(t), o)
	assert.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	require.NoError(t, SavePNG(path, plannedTiles(t), options()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestChart_SeriesPerInstrument(t *testing.T) {
	c := Chart(plannedTiles(t), options())

	var names []string
	for _, s := range c.MultiSeries {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{instrument.LWAC, instrument.RWAC, "rig"}, names)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, plannedTiles(t), options()))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "#886666")
	assert.Contains(t, html, "tiles=10")
}
