package arbuild

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces environment overrides, e.g. ARBUILD_MAX_SCALE.
const envPrefix = "ARBUILD_"

// Config holds the Builder's tunables. Sensitivity and clamp bounds are
// product tuning, so they are configurable rather than fixed.
type Config struct {
	// ScaleSensitivity converts pinch distance change in pixels to scale change.
	ScaleSensitivity float64 `yaml:"scale_sensitivity" env:"SCALE_SENSITIVITY"`
	// MinScale and MaxScale bound every placed object's uniform scale.
	MinScale float64 `yaml:"min_scale" env:"MIN_SCALE"`
	MaxScale float64 `yaml:"max_scale" env:"MAX_SCALE"`
	// InitialMode is the mode a new Builder starts in.
	InitialMode Mode `yaml:"initial_mode" env:"INITIAL_MODE"`
	// Prefab is the kind passed to the Spawner on create.
	Prefab string `yaml:"prefab" env:"PREFAB"`
	// GizmoFadeSeconds is how long the rotation handle takes to appear or
	// disappear on selection change. Zero snaps.
	GizmoFadeSeconds float32 `yaml:"gizmo_fade_seconds" env:"GIZMO_FADE_SECONDS"`
	// Debug enables per-frame stats logging and invariant checks.
	Debug bool `yaml:"debug" env:"DEBUG"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ScaleSensitivity: 0.001,
		MinScale:         0.1,
		MaxScale:         2.0,
		InitialMode:      ModeCreate,
		Prefab:           CubePrefab.Kind,
		GizmoFadeSeconds: 0.15,
	}
}

// LoadConfig parses YAML over DefaultConfig, applies ARBUILD_* environment
// overrides and validates the result. Empty data yields the defaults plus
// overrides.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("arbuild: parse config: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("arbuild: config environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads path and passes its contents to LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("arbuild: read config: %w", err)
	}
	return LoadConfig(data)
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	if c.ScaleSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("scale_sensitivity must be positive, got %v", c.ScaleSensitivity))
	}
	if c.MinScale <= 0 {
		errs = append(errs, fmt.Errorf("min_scale must be positive, got %v", c.MinScale))
	}
	if c.MinScale > 1 || c.MaxScale < 1 {
		errs = append(errs, fmt.Errorf("scale bounds [%v, %v] must contain 1", c.MinScale, c.MaxScale))
	}
	if c.InitialMode != ModeSelect && c.InitialMode != ModeCreate {
		errs = append(errs, fmt.Errorf("initial_mode must be select or create, got %v", c.InitialMode))
	}
	if c.Prefab == "" {
		errs = append(errs, errors.New("prefab must not be empty"))
	}
	if c.GizmoFadeSeconds < 0 {
		errs = append(errs, fmt.Errorf("gizmo_fade_seconds must not be negative, got %v", c.GizmoFadeSeconds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("arbuild: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
