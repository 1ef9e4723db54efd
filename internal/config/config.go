package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kasakh/quadlab/internal/quad"
)

const (
	DefaultIntegrand = "quadratic"
	DefaultMethod    = "montecarlo"
	DefaultDim       = 1
	DefaultNMin      = 2
	DefaultNMax      = 64
	DefaultTrials    = 32
	DefaultBudget    = 4096
)

type Config struct {
	Integrand string       `yaml:"integrand"`
	Method    string       `yaml:"method"`
	Dim       int          `yaml:"dim"`
	NMin      int          `yaml:"n_min"`
	NMax      int          `yaml:"n_max"`
	Trials    int          `yaml:"trials"`
	Seed      int64        `yaml:"seed"`
	Budget    int          `yaml:"budget"`
	Domain    DomainConfig `yaml:"domain"`
}

type DomainConfig struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrand: DefaultIntegrand,
		Method:    DefaultMethod,
		Dim:       DefaultDim,
		NMin:      DefaultNMin,
		NMax:      DefaultNMax,
		Trials:    DefaultTrials,
		Budget:    DefaultBudget,
		Domain:    DomainConfig{Lower: 0, Upper: 1},
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
	if c.Dim < 1 {
		return quad.ErrInvalidDimension
	}
	if c.NMin < 1 || c.NMax < c.NMin {
		return fmt.Errorf("config: invalid N range [%d, %d]", c.NMin, c.NMax)
	}
	if c.Trials < 1 {
		return fmt.Errorf("config: trials must be at least 1, got %d", c.Trials)
	}
	return c.GetDomain().Validate()
}

func (c *Config) GetDomain() quad.Domain {
	return quad.Domain{Lower: c.Domain.Lower, Upper: c.Domain.Upper}
}

// GetNs expands the [NMin, NMax] range into a roughly geometric ladder
// of points-per-axis values, endpoints included.
func (c *Config) GetNs() []int {
	ns := make([]int, 0, 16)
	last := 0
	for n := c.NMin; n <= c.NMax; {
		if n != last {
			ns = append(ns, n)
			last = n
		}
		next := n * 3 / 2
		if next <= n {
			next = n + 1
		}
		n = next
	}
	if last != c.NMax {
		ns = append(ns, c.NMax)
	}
	return ns
}
