package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.1
	DefaultSynchronize = 2.0
	DefaultDuration    = 200.0
	DefaultSeed        = 42
	DefaultCouplingA   = 0.0154
)

type Config struct {
	Network    NetworkConfig  `yaml:"network"`
	Model      ModelConfig    `yaml:"model"`
	Coupling   CouplingConfig `yaml:"coupling"`
	Integrator string         `yaml:"integrator"`
	RateSource RateConfig     `yaml:"rate_source"`

	Dt          float64 `yaml:"dt"`          // integration step, ms
	Synchronize float64 `yaml:"synchronize"` // proxy exchange interval, ms
	Duration    float64 `yaml:"duration"`    // total simulated time, ms
	Seed        int64   `yaml:"seed"`
}

type NetworkConfig struct {
	Regions     int     `yaml:"regions"`
	Topology    string  `yaml:"topology"` // ring | all_to_all
	Weight      float64 `yaml:"weight"`
	TractLength float64 `yaml:"tract_length"` // ms at unit speed
	ProxyIDs    []int   `yaml:"proxy_ids"`
}

type ModelConfig struct {
	Name string `yaml:"name"`
}

type CouplingConfig struct {
	Name string  `yaml:"name"`
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
}

type RateConfig struct {
	Name      string  `yaml:"name"` // constant | sinusoid | poisson
	Level     float64 `yaml:"level"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"` // Hz
}

func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Regions:     8,
			Topology:    "ring",
			Weight:      1.0,
			TractLength: 1.5,
			ProxyIDs:    []int{0},
		},
		Model:      ModelConfig{Name: "reduced_wong_wang"},
		Coupling:   CouplingConfig{Name: "linear", A: DefaultCouplingA},
		Integrator: "heun",
		RateSource: RateConfig{Name: "sinusoid", Level: 0.3, Amplitude: 0.2, Frequency: 10.0},

		Dt:          DefaultDt,
		Synchronize: DefaultSynchronize,
		Duration:    DefaultDuration,
		Seed:        DefaultSeed,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Network.Regions < 2 {
		return fmt.Errorf("need at least 2 regions, got %d", c.Network.Regions)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Synchronize < c.Dt {
		return fmt.Errorf("synchronization interval %f below dt %f", c.Synchronize, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	for _, id := range c.Network.ProxyIDs {
		if id < 0 || id >= c.Network.Regions {
			return fmt.Errorf("proxy id %d out of range [0, %d)", id, c.Network.Regions)
		}
	}
	return nil
}
