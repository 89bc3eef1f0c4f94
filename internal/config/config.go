// Package config holds the yaml configuration surface of the solver.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations   = 1000
	DefaultLearningRate = 1e-3
	DefaultHidden       = 10
	DefaultCollocation  = 50
	DefaultGridDr       = 0.01
	DefaultSeed         = 42
	DefaultOutDir       = "plots/EPE_ODE_solution"
)

type Config struct {
	Iterations   int     `yaml:"iterations"`
	LearningRate float64 `yaml:"learning_rate"`
	Hidden       int     `yaml:"hidden"`
	Seed         int64   `yaml:"seed"`
	Collocation  int     `yaml:"collocation"`
	GridDr       float64 `yaml:"grid_dr"`
	OutDir       string  `yaml:"out_dir"`

	Domain  DomainConfig  `yaml:"domain"`
	Weights WeightsConfig `yaml:"weights"`
	Orbit   OrbitConfig   `yaml:"orbit"`
}

type DomainConfig struct {
	RMin float64 `yaml:"r_min"`
	RMax float64 `yaml:"r_max"`
}

type WeightsConfig struct {
	Residual float64 `yaml:"residual"`
	Boundary float64 `yaml:"boundary"`
	Orbit    float64 `yaml:"orbit"`
}

// OrbitConfig fixes the initial conditions and span shared by the reference
// integration and the nested geodesic solve.
type OrbitConfig struct {
	X0         float64 `yaml:"x0"`
	Y0         float64 `yaml:"y0"`
	VX0        float64 `yaml:"vx0"`
	VY0        float64 `yaml:"vy0"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Tolerance  float64 `yaml:"tolerance"`
	Integrator string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Iterations:   DefaultIterations,
		LearningRate: DefaultLearningRate,
		Hidden:       DefaultHidden,
		Seed:         DefaultSeed,
		Collocation:  DefaultCollocation,
		GridDr:       DefaultGridDr,
		OutDir:       DefaultOutDir,
		Domain:       DomainConfig{RMin: 1.0, RMax: 10.0},
		Weights:      WeightsConfig{Residual: 1.0, Boundary: 1.0, Orbit: 1.0},
		Orbit: OrbitConfig{
			X0:         1.0,
			Y0:         0.0,
			VX0:        0.0,
			VY0:        2 * math.Pi,
			Dt:         0.01,
			Duration:   1.0,
			Tolerance:  0.1,
			Integrator: "rk4",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("config: iterations must be positive, got %d", c.Iterations)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("config: learning rate must be positive, got %f", c.LearningRate)
	}
	if c.Hidden <= 0 {
		return fmt.Errorf("config: hidden units must be positive, got %d", c.Hidden)
	}
	if c.Domain.RMin <= 0 || c.Domain.RMax <= c.Domain.RMin {
		return fmt.Errorf("config: invalid domain [%f, %f]", c.Domain.RMin, c.Domain.RMax)
	}
	if c.Orbit.Dt <= 0 || c.Orbit.Duration <= 0 {
		return fmt.Errorf("config: orbit span must be positive")
	}
	return nil
}
