// Package app is the application shell: it owns the route registry and the
// dispatcher, turns argv into a route match, and returns the handler's exit
// status.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/lock"
	"github.com/footprint-tools/routeshell/internal/log"
	"github.com/footprint-tools/routeshell/internal/metrics"
	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

const (
	tracerName     = "github.com/footprint-tools/routeshell/internal/app"
	maxSuggestions = 3
)

// Application routes argv to handlers.
type Application struct {
	cfg     Config
	version *semver.Version

	registry   *route.Registry
	dispatcher *dispatchers.Dispatcher
	console    ui.Console
	logger     domain.Logger
	journal    domain.InvocationStore
	metrics    *metrics.Recorder
	tracer     trace.Tracer

	banner                func(ui.Console)
	bannerForUserCommands bool
	versionShown          bool

	now func() time.Time
}

// Option configures an Application.
type Option func(*Application)

// WithConsole sets the output sink. Defaults to a ui.Writer on stdout.
func WithConsole(c ui.Console) Option {
	return func(a *Application) {
		a.console = c
	}
}

// WithRegistry uses reg instead of a fresh registry, so callers can share
// it with handlers or supply custom filter factories.
func WithRegistry(reg *route.Registry) Option {
	return func(a *Application) {
		a.registry = reg
	}
}

// WithDispatcher uses d instead of a fresh dispatcher.
func WithDispatcher(d *dispatchers.Dispatcher) Option {
	return func(a *Application) {
		a.dispatcher = d
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(a *Application) {
		a.logger = l
	}
}

// WithJournal records every run in s.
func WithJournal(s domain.InvocationStore) Option {
	return func(a *Application) {
		a.journal = s
	}
}

// WithMetrics observes every run on r and flushes it afterwards.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *Application) {
		a.metrics = r
	}
}

// WithTracer sets the tracer. Defaults to the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(a *Application) {
		a.tracer = t
	}
}

// New registers every declaration and maps the ones carrying a handler.
// Registration failures are returned as is; they mean the application was
// assembled incorrectly.
func New(cfg Config, decls []route.Declaration, opts ...Option) (*Application, error) {
	a := &Application{
		cfg:                   cfg,
		logger:                log.NopLogger{},
		bannerForUserCommands: true,
		now:                   time.Now,
	}
	if cfg.Version != "" {
		if v, err := semver.NewVersion(cfg.Version); err == nil {
			a.version = v
		}
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.console == nil {
		a.console = ui.NewWriter()
	}
	if a.registry == nil {
		a.registry = route.NewRegistry(nil)
	}
	if a.dispatcher == nil {
		a.dispatcher = dispatchers.New(dispatchers.WithLogger(a.logger))
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer(tracerName)
	}

	for _, d := range decls {
		if err := a.AddRoute(d); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// AddRoute registers d and maps its handler, if any.
func (a *Application) AddRoute(d route.Declaration) error {
	if _, err := a.registry.Register(d); err != nil {
		return err
	}
	if !d.HasHandler() {
		return nil
	}
	return a.dispatcher.Map(d.Name, d.Handler)
}

// Registry returns the route registry.
func (a *Application) Registry() *route.Registry {
	return a.registry
}

// Dispatcher returns the dispatcher.
func (a *Application) Dispatcher() *dispatchers.Dispatcher {
	return a.dispatcher
}

// Console returns the output sink.
func (a *Application) Console() ui.Console {
	return a.console
}

// Name returns the application name.
func (a *Application) Name() string {
	return a.cfg.Name
}

// Version returns the parsed application version, or nil when the
// configured version is empty or not semantic.
func (a *Application) Version() *semver.Version {
	return a.version
}

// SetBanner sets the text or callback shown before usage and command
// output. Accepts a string, a func(ui.Console), or nil to clear it.
func (a *Application) SetBanner(banner any) error {
	switch b := banner.(type) {
	case nil:
		a.banner = nil
	case string:
		if b == "" {
			a.banner = nil
			return nil
		}
		a.banner = func(c ui.Console) { c.WriteLine(b) }
	case func(ui.Console):
		a.banner = b
	default:
		return fmt.Errorf("banner must be a string or func(ui.Console), got %T", banner)
	}
	return nil
}

// DisableBannerForUserCommands keeps the banner for usage and unrecognized
// input only.
func (a *Application) DisableBannerForUserCommands() {
	a.bannerForUserCommands = false
}

// ShowVersion writes "<name>, version <version>" and returns 0.
func (a *Application) ShowVersion() int {
	a.console.WriteLine(fmt.Sprintf("%s, version %s", a.cfg.Name, a.cfg.Version))
	a.console.WriteLine("")
	a.versionShown = true
	return 0
}

// ShowUsage writes the list of available commands.
func (a *Application) ShowUsage() {
	dispatchers.RenderUsage(a.console, a.registry)
}

func (a *Application) showBanner() {
	if a.banner != nil {
		a.banner(a.console)
	}
}

func (a *Application) showUnrecognized(args []string) {
	a.console.Write("Unrecognized command: ", ui.ColorRed)
	a.console.WriteLine(strings.Join(args, " "))
	if suggestions := dispatchers.FindSimilarRoutes(args[0], a.registry, maxSuggestions); len(suggestions) > 0 {
		a.console.WriteLine("")
		a.console.WriteLine("Did you mean one of these?")
		for _, s := range suggestions {
			a.console.WriteLine("    " + s)
		}
	}
	a.console.WriteLine("")
	a.ShowUsage()
}

// Run executes args and returns the process exit status. Fatal dispatch
// errors are reported on the console and exit 1.
func (a *Application) Run(ctx context.Context, args []string) int {
	status, err := a.Execute(ctx, args)
	if err != nil {
		return dispatchers.ReportError(a.console, err)
	}
	return status
}

// Execute is Run with fatal errors returned instead of reported.
func (a *Application) Execute(ctx context.Context, args []string) (int, error) {
	ctx, span := a.tracer.Start(ctx, "routeshell.run")
	defer span.End()

	if a.cfg.ShowVersion && !a.versionShown {
		a.ShowVersion()
	}

	if len(args) == 0 {
		a.showBanner()
		a.ShowUsage()
		return 0, nil
	}

	run := newRun(a, args)

	if a.cfg.Lock {
		l, err := lock.TryAcquire(a.cfg.LockDir, args[0]+"-cron")
		if errors.Is(err, lock.ErrHeld) {
			a.logger.Info("app: %s skipped, lock held", args[0])
			a.console.WriteLine(usage.LockHeld(args[0]).Message)
			return run.finish(span, 0, nil), nil
		}
		if err != nil {
			err = fmt.Errorf("acquire lock for %q: %w", args[0], err)
			return run.finish(span, 1, err), err
		}
		defer func() {
			if err := l.Release(); err != nil {
				a.logger.Warn("app: release lock: %v", err)
			}
		}()
	}

	matched, ok := a.registry.Match(args)
	if !ok {
		a.logger.Debug("app: no route matches %q", strings.Join(args, " "))
		a.showBanner()
		a.showUnrecognized(args)
		return run.finish(span, 1, nil), nil
	}
	run.route = matched.Name()
	a.logger.Debug("app: matched route %q", run.route)

	if a.bannerForUserCommands {
		a.showBanner()
	}

	status, err := a.dispatcher.Dispatch(ctx, args, a.registry, a.console)
	return run.finish(span, status, err), err
}
