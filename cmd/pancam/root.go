package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/PanCam/internal/config"
	"github.com/cjeanneret/PanCam/internal/debug"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	debugLevel int
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pancam",
		Short: "Plan panoramic image coverage for a rover mast camera",
		Long: `pancam models a rover mast pan-tilt unit with its cameras and plans
panorama passes: for each capture it derives where every active camera
looks and the footprint it covers at its distance of interest.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a configs/*.yaml file (default: built-in reference rover)")
	root.PersistentFlags().IntVarP(&a.debugLevel, "debug", "d", 0, "debug level 0-4, overrides the config")

	root.AddCommand(
		newServeCmd(a),
		newPlanCmd(a),
		newPoseCmd(a),
		newInstrumentsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.DebugLevel()
	if cmd.Flags().Changed("debug") {
		if a.debugLevel < debug.LevelOff || a.debugLevel > debug.LevelTrace {
			return fmt.Errorf("debug level must be between 0 and 4, got %d", a.debugLevel)
		}
		level = a.debugLevel
	}
	a.cfg = cfg

	debug.Init(level)
	debug.Section("Initialization")
	debug.Value("Config path", a.configPath)
	debug.Value("Debug level", level)
	return nil
}
