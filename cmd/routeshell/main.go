package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/footprint-tools/routeshell/internal/actions"
	"github.com/footprint-tools/routeshell/internal/app"
	"github.com/footprint-tools/routeshell/internal/browse"
	"github.com/footprint-tools/routeshell/internal/cli"
	"github.com/footprint-tools/routeshell/internal/completions"
	"github.com/footprint-tools/routeshell/internal/config"
	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/format"
	"github.com/footprint-tools/routeshell/internal/log"
	"github.com/footprint-tools/routeshell/internal/manifest"
	"github.com/footprint-tools/routeshell/internal/metrics"
	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/store"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/ui/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run wires the application from configuration and executes argv.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	globals, args := cli.ExtractGlobals(argv)

	provider := config.NewProvider()
	settings := config.Load(provider)
	if globals.Routes != "" {
		settings.RoutesFile = globals.Routes
	}

	// Enable styling if stdout is a terminal and --no-color is not set
	style.Init(isTerminal(stdout) && !globals.NoColor)

	logger, closeLog := newLogger(settings, stderr)
	defer closeLog()

	writerOpts := []ui.WriterOption{ui.WithConfigGetter(provider.Get)}
	if globals.NoPager {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if globals.Pager != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(globals.Pager))
	}
	console := ui.NewWriterTo(stdout, writerOpts...)

	decls := cli.BuiltinRoutes()
	if settings.RoutesFile != "" {
		extra, err := manifest.Load(settings.RoutesFile)
		if err != nil {
			fmt.Fprintf(stderr, "routeshell: %v\n", err)
			return 1
		}
		decls = append(decls, extra...)
	}

	reg := route.NewRegistry(nil)
	deps := actions.Deps{
		AppName:  settings.Name,
		Version:  settings.Version,
		Binary:   completions.BinaryPath(settings.Name),
		Registry: reg,
		Config:   provider,
		Format:   format.New(settings.DisplayDate, settings.DisplayTime),
		LogPath:  settings.LogPath,
		Browse:   browse.Run,
		Page:     console.Pager,
	}

	opts := []app.Option{
		app.WithConsole(console),
		app.WithRegistry(reg),
		app.WithLogger(logger),
	}

	if settings.Journal {
		journal, err := store.New(settings.JournalPath)
		if err != nil {
			logger.Warn("journal disabled: %v", err)
		} else {
			defer func() { _ = journal.Close() }()
			deps.Journal = journal
			opts = append(opts, app.WithJournal(journal))
		}
	}

	if settings.MetricsTextfile != "" {
		opts = append(opts, app.WithMetrics(metrics.NewRecorder(metrics.WithTextfile(settings.MetricsTextfile))))
	}

	opts = append(opts, app.WithDispatcher(dispatchers.New(
		dispatchers.WithFactories(actions.Factories(deps)),
		dispatchers.WithLocator(actions.ExecLocator{}),
		dispatchers.WithLogger(logger),
	)))

	application, err := app.New(app.ConfigFromSettings(settings), decls, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "routeshell: %v\n", err)
		return 1
	}
	if err := application.SetBanner(settings.Banner); err != nil {
		fmt.Fprintf(stderr, "routeshell: %v\n", err)
		return 1
	}

	return application.Run(ctx, args)
}

// newLogger returns the file logger, installed as the package default, and
// the func that uninstalls and closes it.
func newLogger(settings config.Settings, stderr io.Writer) (domain.Logger, func()) {
	if !settings.EnableLog {
		return log.NopLogger{}, func() {}
	}

	l, err := log.New(settings.LogPath, log.ParseLevel(settings.LogLevel))
	if err != nil {
		fmt.Fprintf(stderr, "routeshell: logging disabled: %v\n", err)
		return log.NopLogger{}, func() {}
	}
	log.SetDefault(l)
	return l, func() {
		log.SetDefault(nil)
		_ = l.Close()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
