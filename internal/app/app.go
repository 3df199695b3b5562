package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/specialistvlad/forge/internal/ctxlog"
	"github.com/specialistvlad/forge/internal/fsutil"
	"github.com/specialistvlad/forge/internal/generator"
	"github.com/specialistvlad/forge/internal/inspector"
	"github.com/specialistvlad/forge/internal/lint"
	"github.com/specialistvlad/forge/internal/manifest"
	"github.com/specialistvlad/forge/internal/service"
	"github.com/specialistvlad/forge/internal/toolchain"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *prometheus.Registry
	metrics    *service.Metrics
	generator  *generator.Generator
	inspector  *inspector.Inspector
	controller toolchain.Controller
	httpServer *http.Server
}

// Option customizes an App.
type Option func(*options)

type options struct {
	controller toolchain.Controller
	locator    fsutil.Locator
}

// WithController replaces the process-backed toolchain controller.
func WithController(c toolchain.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithLocator replaces the file system locator.
func WithLocator(l fsutil.Locator) Option {
	return func(o *options) { o.locator = l }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and metrics registry.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	o := options{locator: fsutil.OS{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.controller == nil {
		o.controller = toolchain.NewXcodeBuild(cfg.XcodeBuild)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	registry := prometheus.NewRegistry()
	manifests := manifest.NewLoader(o.locator)

	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		registry:   registry,
		metrics:    service.NewMetrics(registry),
		generator:  generator.New(generator.NewGraphLoader(manifests), lint.New(o.locator)),
		inspector:  inspector.New(o.locator, logger),
		controller: o.controller,
	}
}

// Start brings up the optional health check server.
func (a *App) Start() error {
	return a.startHealthCheckServer()
}

// Close releases what Start acquired.
func (a *App) Close(ctx context.Context) error {
	return a.closeHealthCheckServer(ctx)
}

// Path is the absolute directory the App operates on.
func (a *App) Path() string {
	return a.config.Path
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

func (a *App) deps() service.Deps {
	return service.Deps{
		Graphs:     a.generator,
		Inspector:  a.inspector,
		Controller: a.controller,
		Metrics:    a.metrics,
		Logger:     a.logger,
		Output:     a.outW,
	}
}
