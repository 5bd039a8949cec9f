// Package config loads and saves game configurations.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon        = 50
	DefaultDt             = 0.1
	DefaultRegularization = 1e-4
)

type Config struct {
	Game           string    `yaml:"game"`
	Horizon        int       `yaml:"horizon"`
	Dt             float64   `yaml:"dt"`
	InitState      []float64 `yaml:"init_state,omitempty"`
	Regularization float64   `yaml:"regularization,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Game:           "regulation",
		Horizon:        DefaultHorizon,
		Dt:             DefaultDt,
		Regularization: DefaultRegularization,
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
