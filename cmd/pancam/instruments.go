package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/PanCam/internal/logic/instrument"
)

func newInstrumentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"ls"},
		Short:   "List the configured instruments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := a.cfg.InstrumentSpecs()
			if err != nil {
				return err
			}
			return printInstruments(cmd.OutOrStdout(), specs)
		},
	}
}

func printInstruments(out io.Writer, specs []instrument.Spec) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTAGE\tVFOV\tHFOV\tASPECT\tNEAR\tFAR\tCOLOR\tASSET")
	for _, s := range specs {
		asset := s.Asset
		if asset == "" {
			asset = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f°\t%.2f°\t%.3f\t%.2f\t%.2f\t%s\t%s\n",
			s.ID, s.Stage, s.VerticalFovDeg, s.HorizontalFovDeg(), s.AspectRatio,
			s.NearDistance, s.FarDistance, s.Style.Hex(), asset)
	}
	return tw.Flush()
}
