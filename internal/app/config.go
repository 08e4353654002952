package app

import (
	"errors"
	"strings"
	"time"

	"github.com/specialistvlad/evacgrid/internal/selector"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	AreaPath string // hcl file or directory
	Seed     bool   // start from the canonical seed area

	// Start and Destinations form an ad-hoc query. When Start is empty the
	// queries saved in the area files run instead.
	Start        string
	Destinations []string

	Selection selector.Mode
	BonusEdge bool

	LogFormat string
	LogLevel  string

	RenderURL     string
	RenderEvent   string
	RenderTimeout time.Duration
	ExportPath    string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.AreaPath == "" && !cfg.Seed {
		return nil, errors.New("no area to plan on: provide an area path or enable the seed area")
	}

	cfg.Start = strings.TrimSpace(cfg.Start)
	dests := make([]string, 0, len(cfg.Destinations))
	for _, d := range cfg.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			dests = append(dests, d)
		}
	}
	cfg.Destinations = dests

	if cfg.Start != "" && len(cfg.Destinations) == 0 {
		return nil, errors.New("a start node needs at least one destination")
	}
	if cfg.Start == "" && len(cfg.Destinations) > 0 {
		return nil, errors.New("destinations were given without a start node")
	}
	if cfg.RenderTimeout < 0 {
		return nil, errors.New("render timeout cannot be negative")
	}

	return &cfg, nil
}
