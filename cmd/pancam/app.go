package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cjeanneret/PanCam/internal/config"
	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
	"github.com/cjeanneret/PanCam/internal/logic/session"
	"github.com/cjeanneret/PanCam/internal/scene"
)

// buildSession wires the registry, rig, presets and asset tracker described
// by cfg into a fresh session. Assets start pending.
func buildSession(cfg *config.Config) (*session.State, *scene.Assets, error) {
	debug.Step(1, "Registering instruments")
	specs, err := cfg.InstrumentSpecs()
	if err != nil {
		return nil, nil, err
	}
	reg, err := instrument.NewRegistryWith(specs)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range specs {
		debug.PrintStruct("Instrument "+s.ID, s)
	}

	assets := scene.NewAssets(scene.AssetBody, scene.AssetMasthead, scene.AssetDrill)
	reg.SetAvailability(assets.Loaded)

	debug.Step(2, "Building rig model")
	rig := ptu.NewRig(cfg.RigBase())
	debug.Value("Rig origin", rig.Origin())

	presets, err := ptu.NewPresets(cfg.PresetList())
	if err != nil {
		return nil, nil, err
	}
	s := session.New(ptu.NewModel(rig, reg), presets, cfg.SessionLimits())
	debug.Info("Session ready: %d instruments, %d presets", reg.Len(), len(presets.All()))
	return s, assets, nil
}

// assetLoaders returns one loader per asset slot. With an asset directory a
// slot loads when its <name>.glb mesh exists; without one every slot loads.
func assetLoaders(dir string) map[string]scene.Loader {
	loaders := make(map[string]scene.Loader)
	for _, name := range []string{scene.AssetBody, scene.AssetMasthead, scene.AssetDrill} {
		path := ""
		if dir != "" {
			path = filepath.Join(dir, name+".glb")
		}
		loaders[name] = func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path == "" {
				return nil
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("mesh %s: %w", path, err)
			}
			return nil
		}
	}
	return loaders
}

// loadAssets resolves the asset slots. A missing asset only disables the
// instruments attached to it, so the error is logged and not returned.
func loadAssets(ctx context.Context, assets *scene.Assets, dir string) {
	if err := assets.LoadAll(ctx, assetLoaders(dir)); err != nil {
		debug.Error(err)
	}
}
