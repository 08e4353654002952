package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/ctxlog"
	"github.com/specialistvlad/evacgrid/internal/insertion"
	"github.com/specialistvlad/evacgrid/internal/planner"
	"github.com/specialistvlad/evacgrid/internal/render"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	model   *config.Model
	session *planner.Session
	sinks   []render.Sink
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and planning session.
// A loader is only consulted when cfg.AreaPath is set.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var g *area.Graph
	if cfg.Seed {
		g = area.Seed()
		logger.Debug("Seed area loaded.", "nodes", g.Len())
	}

	session := planner.NewSession(g,
		planner.WithPolicy(insertion.Policy{RescueCenterBonusEdge: cfg.BonusEdge}),
		planner.WithSelection(cfg.Selection),
	)

	model := &config.Model{}
	if cfg.AreaPath != "" {
		var err error
		model, err = loader.Load(ctx, cfg.AreaPath)
		if err != nil {
			// A failure to load the area is a fatal startup error.
			panic(fmt.Errorf("failed to load area: %w", err))
		}
		logger.Debug("Area files loaded into unified model.")

		if err := applyModel(ctx, session, model); err != nil {
			panic(fmt.Errorf("failed to build area: %w", err))
		}
	}

	sinks := []render.Sink{render.NewConsoleSink(outW)}
	if cfg.RenderURL != "" {
		sinks = append(sinks, render.NewSocketIOSink(cfg.RenderURL, cfg.RenderEvent, cfg.RenderTimeout))
	}
	if cfg.ExportPath != "" {
		sinks = append(sinks, render.NewHCLSink(cfg.ExportPath))
	}
	logger.Debug("Sinks configured.", "count", len(sinks))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		model:   model,
		session: session,
		sinks:   sinks,
	}
}

// Session returns the application's planning session. This is primarily for testing.
func (a *App) Session() *planner.Session {
	return a.session
}
