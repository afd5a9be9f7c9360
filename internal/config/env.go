package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultTrackURL is the looping background track.
const DefaultTrackURL = "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"

// Config holds the runtime settings read from the environment.
type Config struct {
	TrackURL       string        `env:"VALENTINE_TRACK_URL" envDefault:"https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"`
	FetchTimeout   time.Duration `env:"VALENTINE_FETCH_TIMEOUT" envDefault:"60s"`
	HeartCap       int           `env:"VALENTINE_HEART_CAP" envDefault:"15"`
	SpawnInterval  time.Duration `env:"VALENTINE_SPAWN_INTERVAL" envDefault:"1s"`
	ReapInterval   time.Duration `env:"VALENTINE_REAP_INTERVAL" envDefault:"6s"`
	RevealInterval time.Duration `env:"VALENTINE_REVEAL_INTERVAL" envDefault:"1s"`
	Autoplay       bool          `env:"VALENTINE_AUTOPLAY" envDefault:"false"`
	LogLevel       string        `env:"VALENTINE_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the scheduler and heart field cannot run with.
func (c Config) Validate() error {
	if c.TrackURL == "" {
		return fmt.Errorf("VALENTINE_TRACK_URL must not be empty")
	}
	if c.HeartCap < 1 {
		return fmt.Errorf("VALENTINE_HEART_CAP must be at least 1, got %d", c.HeartCap)
	}
	for name, d := range map[string]time.Duration{
		"VALENTINE_SPAWN_INTERVAL":  c.SpawnInterval,
		"VALENTINE_REAP_INTERVAL":   c.ReapInterval,
		"VALENTINE_REVEAL_INTERVAL": c.RevealInterval,
		"VALENTINE_FETCH_TIMEOUT":   c.FetchTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("VALENTINE_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
