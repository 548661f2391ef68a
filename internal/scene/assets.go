package scene

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cjeanneret/PanCam/internal/debug"
)

// Asset slots of the rover model.
const (
	AssetBody     = "body"
	AssetMasthead = "masthead"
	AssetDrill    = "drill"
)

// AssetStatus is the load state of one asset slot.
type AssetStatus int

const (
	AssetPending AssetStatus = iota
	AssetLoaded
	AssetFailed
)

func (s AssetStatus) String() string {
	switch s {
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Loader fetches one asset.
type Loader func(ctx context.Context) error

// Assets tracks the asynchronous loading of the visual assets that some
// instruments are attached to. Instruments whose asset is not loaded are
// skipped by the planner instead of failing it.
type Assets struct {
	mu     sync.RWMutex
	status map[string]AssetStatus
	errs   map[string]error
}

// NewAssets creates a tracker with every named slot pending.
func NewAssets(names ...string) *Assets {
	a := &Assets{
		status: make(map[string]AssetStatus, len(names)),
		errs:   make(map[string]error),
	}
	for _, n := range names {
		a.status[n] = AssetPending
	}
	return a
}

// Resolve marks an asset as loaded.
func (a *Assets) Resolve(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status[name] = AssetLoaded
	delete(a.errs, name)
	debug.Live("Asset %s loaded", name)
}

// Fail marks an asset as failed. The instruments on it stay unavailable.
func (a *Assets) Fail(name string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status[name] = AssetFailed
	a.errs[name] = err
	debug.Error(fmt.Errorf("asset %s: %w", name, err))
}

// Loaded reports whether name has finished loading. Its signature matches
// instrument.AvailabilityFunc.
func (a *Assets) Loaded(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status[name] == AssetLoaded
}

// Status returns the state of every slot.
func (a *Assets) Status() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]string, len(a.status))
	for n, s := range a.status {
		out[n] = s.String()
	}
	return out
}

// Err returns the load error of a failed asset.
func (a *Assets) Err(name string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.errs[name]
}

// LoadAll runs every loader concurrently and records its outcome. A failing
// loader only marks its own slot; the first error is returned once all
// loaders have finished.
func (a *Assets) LoadAll(ctx context.Context, loaders map[string]Loader) error {
	var g errgroup.Group
	for name, load := range loaders {
		g.Go(func() error {
			if err := load(ctx); err != nil {
				a.Fail(name, err)
				return fmt.Errorf("load %s: %w", name, err)
			}
			a.Resolve(name)
			return nil
		})
	}
	return g.Wait()
}
