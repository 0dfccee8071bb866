// Package config reads the site runner's settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/phanxgames/sprout"
)

// Config is the runner's environment-driven configuration.
type Config struct {
	Title  string `env:"SPROUT_TITLE" envDefault:"Agri-BioFuels Global"`
	Width  int    `env:"SPROUT_WIDTH" envDefault:"1280"`
	Height int    `env:"SPROUT_HEIGHT" envDefault:"800"`
	TPS    int    `env:"SPROUT_TPS" envDefault:"60"`
	Debug  bool   `env:"SPROUT_DEBUG" envDefault:"false"`

	// ContentPath is a site document on disk; empty uses the embedded one.
	ContentPath string `env:"SPROUT_CONTENT"`
	// Watch reloads ContentPath when it changes.
	Watch bool `env:"SPROUT_WATCH" envDefault:"false"`

	Intro IntroEnv
}

// IntroEnv overrides the intro's timings.
type IntroEnv struct {
	Ramp    time.Duration `env:"SPROUT_INTRO_RAMP" envDefault:"3s"`
	Reveal  time.Duration `env:"SPROUT_INTRO_REVEAL" envDefault:"500ms"`
	Hold    time.Duration `env:"SPROUT_INTRO_HOLD" envDefault:"500ms"`
	Exit    time.Duration `env:"SPROUT_INTRO_EXIT" envDefault:"1s"`
	Ambient string        `env:"SPROUT_INTRO_AMBIENT"`
	Density int           `env:"SPROUT_INTRO_DENSITY" envDefault:"-1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("parse env: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if cfg.TPS <= 0 {
		return Config{}, fmt.Errorf("parse env: TPS %d must be positive", cfg.TPS)
	}
	if cfg.Watch && cfg.ContentPath == "" {
		return Config{}, fmt.Errorf("parse env: SPROUT_WATCH requires SPROUT_CONTENT")
	}
	return cfg, nil
}

// IntroConfig merges the intro overrides onto base. The ambient kind and
// density fall back to base when unset.
func (c Config) IntroConfig(base sprout.IntroConfig) (sprout.IntroConfig, error) {
	out := base
	out.RampDuration = c.Intro.Ramp
	out.RevealDelay = c.Intro.Reveal
	out.HoldDuration = c.Intro.Hold
	out.ExitDuration = c.Intro.Exit
	if c.Intro.Ambient != "" {
		kind, err := sprout.ParseAmbientKind(c.Intro.Ambient)
		if err != nil {
			return sprout.IntroConfig{}, fmt.Errorf("parse env: %w", err)
		}
		out.Ambient = kind
	}
	if c.Intro.Density >= 0 {
		out.Density = c.Intro.Density
	}
	if err := out.Validate(); err != nil {
		return sprout.IntroConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return out, nil
}
