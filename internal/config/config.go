package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
	"github.com/cjeanneret/PanCam/internal/logic/session"
)

// MaxConfigFileBytes bounds the size of a config file.
const MaxConfigFileBytes = 1 << 20

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// RigConfig places the mast in the scene.
type RigConfig struct {
	Base []float64 `yaml:"base"` // rig origin [x, y, z] in metres, y up
}

// SensorConfig is the physical sensor size in mm.
type SensorConfig struct {
	WidthMm  float64 `yaml:"width_mm"`
	HeightMm float64 `yaml:"height_mm"`
}

// InstrumentConfig describes one camera. The field of view is either given
// directly or derived from sensor size and focal length.
type InstrumentConfig struct {
	ID             string        `yaml:"id"`
	VerticalFovDeg float64       `yaml:"vertical_fov_deg"`
	Sensor         *SensorConfig `yaml:"sensor,omitempty"`
	FocalLengthMm  float64       `yaml:"focal_length_mm"`
	AspectRatio    float64       `yaml:"aspect_ratio"` // ignored when sensor is set
	Near           float64       `yaml:"near"`
	Far            float64       `yaml:"far"`
	Mount          []float64     `yaml:"mount"`           // offset from the tilt axis [x, y, z]
	MountYawDeg    float64       `yaml:"mount_yaw_deg"`   // toe-in, positive turns left
	MountPitchDeg  float64       `yaml:"mount_pitch_deg"` // positive looks up
	Stage          string        `yaml:"stage"`           // tilt (default), pan or body
	Asset          string        `yaml:"asset"`           // optional asset the instrument needs
	Color          string        `yaml:"color"`           // "#rrggbb"
	Opacity        float64       `yaml:"opacity"`         // 0-1
}

// PresetConfig is a named PTU pose.
type PresetConfig struct {
	Name    string  `yaml:"name"`
	PanDeg  float64 `yaml:"pan_deg"`
	TiltDeg float64 `yaml:"tilt_deg"`
}

// AssetsConfig locates the optional rover model meshes. With no dir every
// asset counts as loaded.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// LimitsConfig bounds the operator inputs.
type LimitsConfig struct {
	MaxSamples int     `yaml:"max_samples"`
	MinFar     float64 `yaml:"min_far"`
	MaxFar     float64 `yaml:"max_far"`
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel     int     `yaml:"debug_level"`     // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	WebPort        int     `yaml:"web_port"`        // HTTP port of the control UI
	OverlapPercent float64 `yaml:"overlap_percent"` // target overlap for sample suggestions (0-100)
}

// Config aggregates all application configuration.
// An empty instrument or preset list selects the reference rover's.
type Config struct {
	Rig         RigConfig          `yaml:"rig"`
	Instruments []InstrumentConfig `yaml:"instruments"`
	Presets     []PresetConfig     `yaml:"presets"`
	Assets      AssetsConfig       `yaml:"assets"`
	Limits      LimitsConfig       `yaml:"limits"`
	Defaults    DefaultsConfig     `yaml:"defaults"`
}

// Default returns the reference rover configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// ValidateConfigPath accepts only .yaml files inside a directory named
// "configs", with no parent references.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty: %w", ErrInvalidConfig)
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not contain '..': %w", path, ErrInvalidConfig)
		}
	}
	clean := filepath.Clean(path)
	if filepath.Ext(clean) != ".yaml" {
		return fmt.Errorf("config path %q must end in .yaml: %w", path, ErrInvalidConfig)
	}
	if filepath.Base(filepath.Dir(clean)) != "configs" {
		return fmt.Errorf("config path %q must be in a configs/ directory: %w", path, ErrInvalidConfig)
	}
	return nil
}

// Load reads a YAML file and returns the configuration. An empty path
// returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if err := ValidateConfigPath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file is %d bytes, limit is %d: %w", info.Size(), MaxConfigFileBytes, ErrInvalidConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Rig.Base) == 0 {
		c.Rig.Base = []float64{ptu.DefaultBase.X(), ptu.DefaultBase.Y(), ptu.DefaultBase.Z()}
	}
	for i := range c.Instruments {
		ic := &c.Instruments[i]
		if ic.AspectRatio == 0 {
			ic.AspectRatio = 1
		}
		if ic.Far == 0 {
			ic.Far = 2
		}
		if ic.Color == "" {
			ic.Color = "#888888"
		}
		if ic.Opacity == 0 {
			ic.Opacity = 0.5
		}
	}
	if c.Limits.MaxSamples == 0 {
		c.Limits.MaxSamples = session.DefaultLimits().MaxSamples
	}
	if c.Limits.MinFar == 0 {
		c.Limits.MinFar = session.DefaultLimits().MinFar
	}
	if c.Limits.MaxFar == 0 {
		c.Limits.MaxFar = session.DefaultLimits().MaxFar
	}
	if c.Defaults.WebPort == 0 {
		c.Defaults.WebPort = 8080
	}
	if c.Defaults.OverlapPercent == 0 {
		c.Defaults.OverlapPercent = 30 // reasonable default (30%)
	}
}

func (c *Config) validate() error {
	if len(c.Rig.Base) != 3 {
		return fmt.Errorf("rig.base must have 3 components, got %d: %w", len(c.Rig.Base), ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Instruments))
	for i, ic := range c.Instruments {
		if ic.ID == "" {
			return fmt.Errorf("instruments[%d].id is required: %w", i, ErrInvalidConfig)
		}
		if seen[ic.ID] {
			return fmt.Errorf("instrument %q is defined twice: %w", ic.ID, ErrInvalidConfig)
		}
		seen[ic.ID] = true
		if ic.AspectRatio < 0 {
			return fmt.Errorf("instrument %q: aspect_ratio must be > 0, got %.2f: %w", ic.ID, ic.AspectRatio, ErrInvalidConfig)
		}
		if ic.Near < 0 || ic.Far <= ic.Near {
			return fmt.Errorf("instrument %q: need 0 <= near < far, got near=%.2f far=%.2f: %w", ic.ID, ic.Near, ic.Far, ErrInvalidConfig)
		}
		if len(ic.Mount) != 0 && len(ic.Mount) != 3 {
			return fmt.Errorf("instrument %q: mount must have 3 components: %w", ic.ID, ErrInvalidConfig)
		}
		if ic.Opacity < 0 || ic.Opacity > 1 {
			return fmt.Errorf("instrument %q: opacity must be between 0 and 1: %w", ic.ID, ErrInvalidConfig)
		}
		if _, err := parseColor(ic.Color); err != nil {
			return fmt.Errorf("instrument %q: %v: %w", ic.ID, err, ErrInvalidConfig)
		}
		if _, err := instrument.ParseStage(ic.Stage); err != nil {
			return fmt.Errorf("instrument %q: %v: %w", ic.ID, err, ErrInvalidConfig)
		}
	}
	if c.Limits.MaxSamples < 2 {
		return fmt.Errorf("limits.max_samples must be >= 2, got %d: %w", c.Limits.MaxSamples, ErrInvalidConfig)
	}
	if c.Limits.MinFar <= 0 || c.Limits.MaxFar < c.Limits.MinFar {
		return fmt.Errorf("limits need 0 < min_far <= max_far, got %.2f and %.2f: %w", c.Limits.MinFar, c.Limits.MaxFar, ErrInvalidConfig)
	}
	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d: %w", c.Defaults.DebugLevel, ErrInvalidConfig)
	}
	if c.Defaults.WebPort < 1 || c.Defaults.WebPort > 65535 {
		return fmt.Errorf("web_port must be between 1 and 65535, got %d: %w", c.Defaults.WebPort, ErrInvalidConfig)
	}
	if c.Defaults.OverlapPercent < 0 || c.Defaults.OverlapPercent > 100 {
		return fmt.Errorf("overlap_percent must be between 0 and 100, got %.2f: %w", c.Defaults.OverlapPercent, ErrInvalidConfig)
	}
	return nil
}

func parseColor(s string) (uint32, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %v", s, err)
	}
	return uint32(v), nil
}

func vec3(v []float64) mgl64.Vec3 {
	if len(v) != 3 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// Spec converts the config entry to an instrument spec. FOV errors wrap
// geometry.ErrInvalidFov.
func (ic InstrumentConfig) Spec() (instrument.Spec, error) {
	vfov, aspect := ic.VerticalFovDeg, ic.AspectRatio
	if ic.Sensor != nil {
		calc, err := geometry.NewFOVCalculator(ic.Sensor.WidthMm, ic.Sensor.HeightMm, ic.FocalLengthMm)
		if err != nil {
			return instrument.Spec{}, fmt.Errorf("instrument %q: %w", ic.ID, err)
		}
		vfov, aspect = calc.VerticalFOV(), calc.AspectRatio()
	}
	stage, err := instrument.ParseStage(ic.Stage)
	if err != nil {
		return instrument.Spec{}, fmt.Errorf("instrument %q: %w", ic.ID, err)
	}
	color, err := parseColor(ic.Color)
	if err != nil {
		return instrument.Spec{}, fmt.Errorf("instrument %q: %w", ic.ID, err)
	}
	spec := instrument.Spec{
		ID:             ic.ID,
		VerticalFovDeg: vfov,
		AspectRatio:    aspect,
		NearDistance:   ic.Near,
		FarDistance:    ic.Far,
		MountPosition:  vec3(ic.Mount),
		MountRotation:  instrument.MountYawPitch(ic.MountYawDeg, ic.MountPitchDeg),
		Stage:          stage,
		Asset:          ic.Asset,
		Style:          instrument.Style{Color: color, Opacity: ic.Opacity},
	}
	if err := spec.Validate(); err != nil {
		return instrument.Spec{}, err
	}
	return spec, nil
}

// RigBase returns the world position of the rig origin.
func (c *Config) RigBase() mgl64.Vec3 {
	return vec3(c.Rig.Base)
}

// InstrumentSpecs converts the instrument list, or returns the reference
// instruments when none are configured.
func (c *Config) InstrumentSpecs() ([]instrument.Spec, error) {
	if len(c.Instruments) == 0 {
		return instrument.Reference(), nil
	}
	specs := make([]instrument.Spec, 0, len(c.Instruments))
	for _, ic := range c.Instruments {
		s, err := ic.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// PresetList returns the configured presets, or the default ones.
func (c *Config) PresetList() []ptu.Preset {
	if len(c.Presets) == 0 {
		return ptu.DefaultPresets()
	}
	out := make([]ptu.Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, ptu.Preset{
			Name:    p.Name,
			PanDeg:  geometry.ClampPan(p.PanDeg),
			TiltDeg: geometry.ClampTilt(p.TiltDeg),
		})
	}
	return out
}

// SessionLimits returns the operator input ranges.
func (c *Config) SessionLimits() session.Limits {
	return session.Limits{
		MaxSamples: c.Limits.MaxSamples,
		MinFar:     c.Limits.MinFar,
		MaxFar:     c.Limits.MaxFar,
	}
}

// OverlapRatio returns the overlap as a ratio (0.0 to 1.0).
// For example, 30% becomes 0.3.
func (c *Config) OverlapRatio() float64 {
	return c.Defaults.OverlapPercent / 100.0
}

// OverlapPercent returns the overlap in percent (0.0 to 100.0).
func (c *Config) OverlapPercent() float64 {
	return c.Defaults.OverlapPercent
}

// AssetDir returns the mesh directory, empty when not configured.
func (c *Config) AssetDir() string {
	return c.Assets.Dir
}

// DebugLevel returns the configured debug level.
func (c *Config) DebugLevel() int {
	return c.Defaults.DebugLevel
}

// WebPort returns the HTTP port of the control UI.
func (c *Config) WebPort() int {
	return c.Defaults.WebPort
}
