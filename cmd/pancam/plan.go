package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/session"
	"github.com/cjeanneret/PanCam/internal/preview"
)

type planOptions struct {
	start, stop float64
	count       int
	tilt        float64
	instruments []string
	far         map[string]string
	png         string
	json        bool
	suggest     bool
}

func newPlanCmd(a *app) *cobra.Command {
	o := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run one panorama pass and print its tiles",
		Long: `Run one panorama pass: the head is tilted to --tilt and panned from
--start to --stop in --count captures; every listed instrument contributes
one tile per capture.`,
		Example: "  pancam plan --start -70 --stop -43.5 -i lwac,rwac --png plan.png",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.plan(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.start, "start", 0, "first pan angle in degrees")
	f.Float64Var(&o.stop, "stop", 0, "last pan angle in degrees")
	f.IntVarP(&o.count, "count", "n", planner.MinSamples, "number of captures")
	f.Float64VarP(&o.tilt, "tilt", "t", 0, "fixed tilt in degrees (positive looks down)")
	f.StringSliceVarP(&o.instruments, "instruments", "i", nil, "instrument ids to activate")
	f.StringToStringVar(&o.far, "far", nil, "distance of interest per instrument, e.g. hrc=5")
	f.StringVar(&o.png, "png", "", "write a top-down preview PNG to this path")
	f.BoolVar(&o.json, "json", false, "print tiles as JSON")
	f.BoolVar(&o.suggest, "suggest", false, "print the sample count suggested by the configured overlap")
	return cmd
}

func (a *app) plan(ctx context.Context, out io.Writer, o *planOptions) error {
	s, assets, err := buildSession(a.cfg)
	if err != nil {
		return err
	}
	loadAssets(ctx, assets, a.cfg.AssetDir())

	ids := make(map[string]bool, len(o.instruments))
	for _, id := range o.instruments {
		if _, err := s.Settings(id); err != nil {
			return err
		}
		ids[id] = true
	}
	for id, v := range o.far {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("--far %s=%s: %w", id, v, err)
		}
		if _, err := s.ApplySettingsChange(id, session.SettingsChange{FarDistance: &d}); err != nil {
			return err
		}
	}
	req := s.ApplyRequestChange(session.RequestChange{
		StartDeg:     &o.start,
		StopDeg:      &o.stop,
		SampleCount:  &o.count,
		FixedTiltDeg: &o.tilt,
		Instruments:  ids,
	})

	if o.suggest {
		suggested := s.SuggestSamples(a.cfg.OverlapRatio())
		for _, id := range req.ActiveIDs() {
			if n, ok := suggested[id]; ok {
				fmt.Fprintf(out, "suggested samples for %s at %.0f%% overlap: %d\n", id, a.cfg.OverlapPercent(), n)
			}
		}
	}

	tiles, _ := s.Plan()

	if o.png != "" {
		snap := s.Snapshot()
		po := preview.Options{Origin: snap.RigOrigin, Colors: map[string]string{}}
		for _, iv := range snap.Instruments {
			po.Colors[iv.ID] = iv.Color
		}
		if err := preview.SavePNG(o.png, tiles, po); err != nil {
			return err
		}
	}

	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tiles)
	}
	return printTiles(out, req, tiles)
}

func printTiles(out io.Writer, req planner.Request, tiles []planner.Tile) error {
	fmt.Fprintf(out, "Sweep %.2f° -> %.2f° in %d samples at tilt %.2f°: %d tiles\n\n",
		req.StartDeg, req.StopDeg, req.SampleCount, req.FixedTiltDeg, len(tiles))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINSTRUMENT\tPAN\tTILT\tCENTRE (x, y, z)\tWIDTH\tHEIGHT")
	for _, t := range tiles {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t(%.3f, %.3f, %.3f)\t%.3f\t%.3f\n",
			t.CaptureIndex, t.InstrumentID, t.CapturePanDeg, t.CaptureTiltDeg,
			t.Position.X(), t.Position.Y(), t.Position.Z(), t.Width, t.Height)
	}
	return tw.Flush()
}
