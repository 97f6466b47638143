package app

import (
	"io"
	"log/slog"

	"github.com/vk/botplan/internal/hcl"
	"github.com/vk/botplan/internal/plan"
	"github.com/vk/botplan/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	errW    io.Writer
	logger  *slog.Logger
	loader  *hcl.Loader
	planner *plan.Planner
}

// NewApp constructs a fully initialized App with its own isolated logger,
// the built-in schema catalog, and a fresh HCL loader.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)

	catalog := registry.Builtin()
	return &App{
		outW:    outW,
		errW:    errW,
		logger:  logger,
		loader:  hcl.NewLoader(),
		planner: plan.NewPlanner(catalog),
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
