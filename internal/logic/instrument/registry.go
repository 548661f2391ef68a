package instrument

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cjeanneret/PanCam/internal/debug"
)

var (
	// ErrDuplicateInstrument is returned by Register when the id is taken.
	ErrDuplicateInstrument = errors.New("duplicate instrument id")
	// ErrUnknownInstrument is returned by Get when the id is not registered.
	ErrUnknownInstrument = errors.New("unknown instrument")
)

// AvailabilityFunc reports whether a named visual asset has finished loading.
type AvailabilityFunc func(asset string) bool

// Registry holds the instruments known to a session, in registration order.
type Registry struct {
	mu        sync.RWMutex
	specs     map[string]Spec
	order     []string
	available AvailabilityFunc
}

// NewRegistry creates an empty registry. Every asset counts as available
// until SetAvailability is called.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]Spec),
	}
}

// NewRegistryWith creates a registry and registers specs in order.
func NewRegistryWith(specs []Spec) (*Registry, error) {
	r := NewRegistry()
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetAvailability installs the asset availability check used by ListActive.
func (r *Registry) SetAvailability(fn AvailabilityFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.available = fn
}

// Register adds a spec. It fails with ErrDuplicateInstrument if the id
// already exists and with geometry.ErrInvalidFov for a bad field of view.
func (r *Registry) Register(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[spec.ID]; ok {
		return fmt.Errorf("register %q: %w", spec.ID, ErrDuplicateInstrument)
	}
	r.specs[spec.ID] = spec
	r.order = append(r.order, spec.ID)
	debug.Verbose("Registered instrument %s (vfov=%.2f°, aspect=%.2f, stage=%s)",
		spec.ID, spec.VerticalFovDeg, spec.AspectRatio, spec.Stage)
	return nil
}

// Get returns the spec for id or ErrUnknownInstrument.
func (r *Registry) Get(id string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[id]
	if !ok {
		return Spec{}, fmt.Errorf("get %q: %w", id, ErrUnknownInstrument)
	}
	return s, nil
}

// ListActive returns the specs for the requested ids, in registration order.
// Ids that are not registered, or whose asset has not loaded yet, are skipped.
func (r *Registry) ListActive(ids map[string]bool) []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Spec
	for _, id := range r.order {
		if !ids[id] {
			continue
		}
		s := r.specs[id]
		if s.Asset != "" && r.available != nil && !r.available(s.Asset) {
			debug.Verbose("Instrument %s skipped: asset %q not loaded", id, s.Asset)
			continue
		}
		out = append(out, s)
	}
	return out
}

// IDs returns all registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns every registered spec in registration order.
func (r *Registry) All() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id])
	}
	return out
}

// Len returns the number of registered instruments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
