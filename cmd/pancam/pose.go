package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

func newPoseCmd(a *app) *cobra.Command {
	var st ptu.State
	cmd := &cobra.Command{
		Use:   "pose [instrument...]",
		Short: "Print the world pose of instruments for a PTU state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pose(cmd.OutOrStdout(), st, args)
		},
	}
	cmd.Flags().Float64Var(&st.PanDeg, "pan", 0, "pan angle in degrees")
	cmd.Flags().Float64Var(&st.TiltDeg, "tilt", 0, "tilt angle in degrees")
	return cmd
}

func (a *app) pose(out io.Writer, st ptu.State, ids []string) error {
	s, _, err := buildSession(a.cfg)
	if err != nil {
		return err
	}
	st = s.MovePTU(&st.PanDeg, &st.TiltDeg)
	model := s.Model()
	if len(ids) == 0 {
		ids = model.Registry().IDs()
	}

	fmt.Fprintf(out, "PTU pan=%.2f° tilt=%.2f°\n\n", st.PanDeg, st.TiltDeg)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTRUMENT\tPOSITION (x, y, z)\tDIRECTION (x, y, z)")
	for _, id := range ids {
		p, err := model.WorldPoseOf(id, st)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t(%.3f, %.3f, %.3f)\t(%.3f, %.3f, %.3f)\n", id,
			p.Position.X(), p.Position.Y(), p.Position.Z(),
			p.Direction.X(), p.Direction.Y(), p.Direction.Z())
	}
	return tw.Flush()
}
