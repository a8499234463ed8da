package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Estimation EstimationConfig
	Sweep      SweepConfig
}

// EstimationConfig holds p-value estimation settings
type EstimationConfig struct {
	Iterations int
	Seed       int64
	Workers    int
}

// SweepConfig holds power sweep settings
type SweepConfig struct {
	Alpha              float64
	ExperimentsPerSize int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Estimation: EstimationConfig{
			Iterations: envInt("MC_ITERATIONS", 1000),
			Seed:       envInt64("MC_SEED", 42),
			Workers:    envInt("MC_WORKERS", 1),
		},
		Sweep: SweepConfig{
			Alpha:              envFloat("MC_ALPHA", 0.05),
			ExperimentsPerSize: envInt("MC_EXPERIMENTS_PER_SIZE", 100),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Estimation.Iterations < 1 {
		return fmt.Errorf("MC_ITERATIONS must be >= 1, got %d", c.Estimation.Iterations)
	}
	if c.Estimation.Workers < 1 {
		return fmt.Errorf("MC_WORKERS must be >= 1, got %d", c.Estimation.Workers)
	}
	if c.Sweep.Alpha <= 0 || c.Sweep.Alpha >= 1 {
		return fmt.Errorf("MC_ALPHA must be in (0, 1), got %g", c.Sweep.Alpha)
	}
	if c.Sweep.ExperimentsPerSize < 1 {
		return fmt.Errorf("MC_EXPERIMENTS_PER_SIZE must be >= 1, got %d", c.Sweep.ExperimentsPerSize)
	}
	return nil
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
