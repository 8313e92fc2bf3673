package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/globalkin/internal/dynamo"
)

const (
	DefaultNetwork     = "argon"
	DefaultTemperature = 5.4
	DefaultT0          = 0.0
	DefaultTEnd        = 5e-8
	DefaultDt          = 1e-12
	DefaultGuard       = "flag"
)

type Config struct {
	Network          string          `yaml:"network"`
	Temperature      float64         `yaml:"temperature"`
	T0               float64         `yaml:"t0"`
	TEnd             float64         `yaml:"t_end"`
	Dt               float64         `yaml:"dt"`
	Guard            string          `yaml:"guard"`
	DirectIonization bool            `yaml:"direct_ionization"`
	Initial          InitStateConfig `yaml:"initial"`
}

// InitStateConfig holds the initial densities in m^-3.
type InitStateConfig struct {
	Electron float64 `yaml:"electron"`
	Ground   float64 `yaml:"ground"`
	Excited1 float64 `yaml:"excited1"`
	Excited2 float64 `yaml:"excited2"`
	Ion      float64 `yaml:"ion"`
}

// ReferenceDensities is the argon discharge the model was built around.
var ReferenceDensities = InitStateConfig{
	Electron: 9.24e18,
	Ground:   1.4e23,
	Excited1: 1.43e18,
	Excited2: 8.7e17,
	Ion:      9.24e18,
}

func DefaultConfig() *Config {
	return &Config{
		Network:     DefaultNetwork,
		Temperature: DefaultTemperature,
		T0:          DefaultT0,
		TEnd:        DefaultTEnd,
		Dt:          DefaultDt,
		Guard:       DefaultGuard,
		Initial:     ReferenceDensities,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes a config file onto cfg. Keys absent from the file keep
// the values cfg already holds, so a file can be layered on a preset.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// InitState returns the densities in species order: electron, ground,
// excited1, excited2, ion.
func (c *Config) InitState() []float64 {
	return []float64{c.Initial.Electron, c.Initial.Ground, c.Initial.Excited1, c.Initial.Excited2, c.Initial.Ion}
}

func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{
		T0:    c.T0,
		TEnd:  c.TEnd,
		Dt:    c.Dt,
		Guard: dynamo.Guard(c.Guard),
	}
}

// Validate reports every configuration error found, so a config file can be
// fixed in one pass.
func (c *Config) Validate() error {
	var errs []error
	if math.IsNaN(c.Temperature) || math.IsInf(c.Temperature, 0) || c.Temperature <= 0 {
		errs = append(errs, fmt.Errorf("%w: %g", dynamo.ErrInvalidTemperature, c.Temperature))
	}
	if err := c.RunConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	for i, v := range c.InitState() {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: initial density %d is negative (%g)", dynamo.ErrInvalidConfig, i, v))
		}
	}
	return errors.Join(errs...)
}
