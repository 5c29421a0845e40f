// Package config loads the recognised training options from YAML, merging
// an embedded set of defaults with an optional override file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every recognised training option.
type Config struct {
	NumIter             int                 `yaml:"num_iter"`
	Rotations           RotationsConfig     `yaml:"rotations"`
	Interpolation       string              `yaml:"interpolation"`
	Layout              LayoutConfig        `yaml:"layout"`
	NeuronDim           int                 `yaml:"neuron_dim"`
	NumberOfChannels    int                 `yaml:"number_of_channels"`
	Init                InitConfig          `yaml:"init"`
	Distribution        DistributionConfig  `yaml:"distribution"`
	Damping             float64             `yaml:"damping"`
	MaxUpdateDistance   float64             `yaml:"max_update_distance"`
	IntermediateStorage IntermediateStorage `yaml:"intermediate_storage"`
	ResultFilename      string              `yaml:"result_filename"`
	ImagesFilename      string              `yaml:"images_filename"`
}

// RotationsConfig controls the size of the per-image orientation bank.
type RotationsConfig struct {
	R       int  `yaml:"r"`
	UseFlip bool `yaml:"use_flip"`
}

// LayoutConfig selects and parameterizes the neuron grid geometry.
type LayoutConfig struct {
	Kind          string `yaml:"kind"` // "CARTESIAN" or "HEXAGONAL"
	Dims          []int  `yaml:"dims"`
	Periodic      []bool `yaml:"periodic"`
	HexSideLength int    `yaml:"hex_side_length"`
}

// InitConfig selects the neuron tensor initializer.
type InitConfig struct {
	Kind         string `yaml:"kind"` // "ZERO", "RANDOM", "RANDOM_WITH_PREFERRED_DIRECTION", "FILEINIT"
	Seed         int64  `yaml:"seed"`
	InitFilename string `yaml:"init_filename"`
}

// DistributionConfig selects the neighborhood weighting function.
type DistributionConfig struct {
	Kind  string  `yaml:"kind"` // "GAUSSIAN" or "MEXICAN_HAT"
	Sigma float64 `yaml:"sigma"`
}

// IntermediateStorage controls checkpoint cadence and retention.
type IntermediateStorage struct {
	Mode           string  `yaml:"mode"` // "OFF", "OVERWRITE", "KEEP"
	ProgressFactor float64 `yaml:"progress_factor"`
}

var global *Config

// Init loads configuration from path, or uses embedded defaults alone if
// path is empty. Must be called before Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the globally loaded configuration. Panics if Init was not
// called first.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load parses the embedded defaults, then merges an optional override file
// on top of them: fields absent from the override file keep their default
// value, exactly pthm-soup's two-pass yaml.Unmarshal merge.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading override file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing override file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Interpolation {
	case "NEAREST_NEIGHBOR", "BILINEAR":
	default:
		return fmt.Errorf("%w: unrecognised interpolation %q", ErrBadConfig, c.Interpolation)
	}
	switch c.Init.Kind {
	case "ZERO", "RANDOM", "RANDOM_WITH_PREFERRED_DIRECTION", "FILEINIT":
	default:
		return fmt.Errorf("%w: unrecognised init kind %q", ErrBadConfig, c.Init.Kind)
	}
	switch c.Distribution.Kind {
	case "GAUSSIAN", "MEXICAN_HAT":
	default:
		return fmt.Errorf("%w: unrecognised distribution kind %q", ErrBadConfig, c.Distribution.Kind)
	}
	switch c.Layout.Kind {
	case "CARTESIAN", "HEXAGONAL":
	default:
		return fmt.Errorf("%w: unrecognised layout kind %q", ErrBadConfig, c.Layout.Kind)
	}
	switch c.IntermediateStorage.Mode {
	case "OFF", "OVERWRITE", "KEEP":
	default:
		return fmt.Errorf("%w: unrecognised intermediate storage mode %q", ErrBadConfig, c.IntermediateStorage.Mode)
	}
	return nil
}
