package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/footprint-tools/routeshell/internal/config"
	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/lock"
	"github.com/footprint-tools/routeshell/internal/metrics"
	"github.com/footprint-tools/routeshell/internal/route"
	dbutil "github.com/footprint-tools/routeshell/internal/testutil"
	"github.com/footprint-tools/routeshell/internal/ui"
)

// recordingTracer keeps every span it starts.
type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	s := &recordingSpan{name: name, attrs: map[attribute.Key]attribute.Value{}}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string)           { s.status = code }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }
func (s *recordingSpan) End(...trace.SpanEndOption)                    { s.ended = true }

type called struct {
	count  int
	params route.Params
	req    *dispatchers.Request
}

func (c *called) handler(status int) dispatchers.Handler {
	return dispatchers.HandlerFunc(func(_ context.Context, req *dispatchers.Request) int {
		c.count++
		c.params = req.Params
		c.req = req
		req.Console.WriteLine("ran " + req.Route.Name())
		return status
	})
}

func testConfig() Config {
	return Config{Name: "demo", Version: "1.4.0"}
}

func newTestApp(t *testing.T, cfg Config, decls []route.Declaration, opts ...Option) (*Application, *ui.Buffer) {
	t.Helper()
	buf := ui.NewBuffer()
	a, err := New(cfg, decls, append([]Option{WithConsole(buf)}, opts...)...)
	require.NoError(t, err)
	return a, buf
}

func TestNew_NonSemanticVersion(t *testing.T) {
	cfg := testConfig()
	cfg.Version = "dev"

	a, buf := newTestApp(t, cfg, nil)
	require.Nil(t, a.Version())
	require.Equal(t, 0, a.ShowVersion())
	require.Equal(t, "demo, version dev\n\n", buf.String())
}

func TestNew_EmptyVersion(t *testing.T) {
	cfg := testConfig()
	cfg.Version = ""

	a, buf := newTestApp(t, cfg, nil)
	require.Nil(t, a.Version())
	require.Equal(t, 0, a.ShowVersion())
	require.Equal(t, "demo, version \n\n", buf.String())
}

func TestNew_InvalidHandler(t *testing.T) {
	_, err := New(testConfig(), []route.Declaration{{Name: "deploy", Handler: 42}}, WithConsole(ui.NewBuffer()))
	require.ErrorIs(t, err, dispatchers.ErrInvalidHandler)
}

func TestNew_UnresolvableHandlerName(t *testing.T) {
	a, err := New(testConfig(), []route.Declaration{{Name: "run", Handler: "NoSuchHandler"}}, WithConsole(ui.NewBuffer()))
	require.ErrorIs(t, err, dispatchers.ErrInvalidHandler)
	require.Nil(t, a)
}

func TestNew_InvalidRoute(t *testing.T) {
	_, err := New(testConfig(), []route.Declaration{{Name: "deploy", Route: "<>"}}, WithConsole(ui.NewBuffer()))
	require.ErrorIs(t, err, route.ErrInvalidRouteSpec)
}

func TestNew_Accessors(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{{Name: "deploy"}})

	require.Equal(t, "demo", a.Name())
	require.Equal(t, "1.4.0", a.Version().String())
	require.Same(t, buf, a.Console())
	require.True(t, a.Registry().Has("deploy"))
	require.False(t, a.Dispatcher().Has("deploy"))
}

func TestExecute_NoArgsShowsUsage(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "deploy", Route: "<env>"},
		{Name: "report"},
	})
	require.NoError(t, a.SetBanner("== demo =="))

	code, err := a.Execute(context.Background(), nil)

	require.NoError(t, err)
	require.Equal(t, 0, code)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "== demo ==\nAvailable commands:\n"))
	require.Contains(t, out, " deploy")
	require.Contains(t, out, " report")
}

func TestExecute_DispatchesMatchedRoute(t *testing.T) {
	var c called
	a, buf := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "deploy", Route: "<env> [--force]", Handler: c.handler(3)},
	})

	code, err := a.Execute(context.Background(), []string{"deploy", "prod", "--force", "extra"})

	require.NoError(t, err)
	require.Equal(t, 3, code)
	require.Equal(t, 1, c.count)
	require.Equal(t, "prod", c.params.String("env", ""))
	require.True(t, c.params.Bool("force"))
	require.Equal(t, []string{"extra"}, c.params.Rest())
	require.Equal(t, []string{"deploy", "prod", "--force", "extra"}, c.req.Args)
	require.Equal(t, "ran deploy\n", buf.String())
	require.Equal(t, dispatchers.Resolved, a.Dispatcher().State("deploy"))
}

func TestExecute_MultiWordRoutes(t *testing.T) {
	var get, set called
	a, buf := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "config get", Route: "<key>", Handler: get.handler(0)},
		{Name: "config set", Route: "<key> <value>", Handler: set.handler(0)},
	})

	code, err := a.Execute(context.Background(), []string{"config", "set", "lock", "true"})

	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Zero(t, get.count)
	require.Equal(t, 1, set.count)
	require.Equal(t, "true", set.params.String("value", ""))
	require.Equal(t, "ran config set\n", buf.String())
}

func TestExecute_Unrecognized(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "deploy", Route: "<env>"},
		{Name: "report"},
	})

	code, err := a.Execute(context.Background(), []string{"deplyo", "prod"})

	require.NoError(t, err)
	require.Equal(t, 1, code)

	lines := buf.Lines()
	require.Equal(t, "Unrecognized command: ", lines[0].Text)
	require.Equal(t, []ui.Color{ui.ColorRed}, lines[0].Colors)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Unrecognized command: deplyo prod\n"))
	require.Contains(t, out, "Did you mean one of these?\n    deploy\n")
	require.Contains(t, out, "Available commands:")
}

func TestExecute_UnrecognizedWithoutSuggestions(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{{Name: "deploy"}})

	code, err := a.Execute(context.Background(), []string{"zzzzzzzzzz"})

	require.NoError(t, err)
	require.Equal(t, 1, code)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Unrecognized command: zzzzzzzzzz\n\n"))
	require.NotContains(t, out, "Did you mean")
}

func TestExecute_UnrecognizedWhenRequiredParamMissing(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{{Name: "deploy", Route: "<env>"}})

	code, err := a.Execute(context.Background(), []string{"deploy"})

	require.NoError(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "Unrecognized command: deploy")
}

func TestExecute_UnmappedCommand(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), []route.Declaration{{Name: "report"}})

	code, err := a.Execute(context.Background(), []string{"report"})

	require.NoError(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), `Unhandled command "report" invoked`)
}

func TestExecute_HandlerNotInvocable(t *testing.T) {
	d := dispatchers.New(dispatchers.WithLocator(dispatchers.MapLocator{"reports": 42}))
	tracer := &recordingTracer{}
	a, buf := newTestApp(t, testConfig(),
		[]route.Declaration{{Name: "report", Handler: "reports"}},
		WithDispatcher(d), WithTracer(tracer))

	code, err := a.Execute(context.Background(), []string{"report"})
	require.ErrorIs(t, err, dispatchers.ErrHandlerNotInvocable)
	require.Equal(t, 1, code)

	require.Len(t, tracer.spans, 1)
	require.Equal(t, codes.Error, tracer.spans[0].status)
	require.Len(t, tracer.spans[0].errs, 1)

	buf.Reset()
	require.Equal(t, 1, a.Run(context.Background(), []string{"report"}))
	require.Contains(t, buf.String(), "Error: ")
}

func TestRun_ReturnsHandlerStatus(t *testing.T) {
	var c called
	a, _ := newTestApp(t, testConfig(), []route.Declaration{{Name: "report", Handler: c.handler(4)}})

	require.Equal(t, 4, a.Run(context.Background(), []string{"report"}))
}

func TestExecute_Banner(t *testing.T) {
	var c called
	decls := []route.Declaration{{Name: "report", Handler: c.handler(0)}}

	t.Run("string", func(t *testing.T) {
		a, buf := newTestApp(t, testConfig(), decls)
		require.NoError(t, a.SetBanner("== demo =="))

		_, err := a.Execute(context.Background(), []string{"report"})
		require.NoError(t, err)
		require.Equal(t, "== demo ==\nran report\n", buf.String())
	})

	t.Run("callback", func(t *testing.T) {
		a, buf := newTestApp(t, testConfig(), decls)
		require.NoError(t, a.SetBanner(func(c ui.Console) { c.WriteLine("banner", ui.ColorCyan) }))

		_, err := a.Execute(context.Background(), []string{"report"})
		require.NoError(t, err)
		require.Equal(t, "banner\nran report\n", buf.String())
	})

	t.Run("disabled for user commands", func(t *testing.T) {
		a, buf := newTestApp(t, testConfig(), decls)
		require.NoError(t, a.SetBanner("== demo =="))
		a.DisableBannerForUserCommands()

		_, err := a.Execute(context.Background(), []string{"report"})
		require.NoError(t, err)
		require.Equal(t, "ran report\n", buf.String())

		buf.Reset()
		_, err = a.Execute(context.Background(), []string{"nope"})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(buf.String(), "== demo ==\n"))
	})

	t.Run("cleared", func(t *testing.T) {
		a, buf := newTestApp(t, testConfig(), decls)
		require.NoError(t, a.SetBanner("== demo =="))
		require.NoError(t, a.SetBanner(nil))

		_, err := a.Execute(context.Background(), []string{"report"})
		require.NoError(t, err)
		require.Equal(t, "ran report\n", buf.String())
	})

	t.Run("invalid type", func(t *testing.T) {
		a, _ := newTestApp(t, testConfig(), decls)
		require.Error(t, a.SetBanner(42))
	})
}

func TestExecute_ShowVersionOnce(t *testing.T) {
	var c called
	cfg := testConfig()
	cfg.ShowVersion = true
	a, buf := newTestApp(t, cfg, []route.Declaration{{Name: "report", Handler: c.handler(0)}})

	_, err := a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)
	_, err = a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)

	require.Equal(t, "demo, version 1.4.0\n\nran report\nran report\n", buf.String())
}

func TestShowVersion(t *testing.T) {
	a, buf := newTestApp(t, testConfig(), nil)

	require.Equal(t, 0, a.ShowVersion())
	require.Equal(t, "demo, version 1.4.0\n\n", buf.String())
}

func TestExecute_LockHeld(t *testing.T) {
	var c called
	cfg := testConfig()
	cfg.Lock = true
	cfg.LockDir = t.TempDir()
	a, buf := newTestApp(t, cfg, []route.Declaration{{Name: "report", Handler: c.handler(5)}})

	held, err := lock.TryAcquire(cfg.LockDir, "report-cron")
	require.NoError(t, err)

	code, err := a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Zero(t, c.count)
	require.Equal(t, "Another process holds the lock!\n", buf.String())

	require.NoError(t, held.Release())
	buf.Reset()

	code, err = a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)
	require.Equal(t, 5, code)
	require.Equal(t, 1, c.count)

	again, err := lock.TryAcquire(cfg.LockDir, "report-cron")
	require.NoError(t, err, "lock is released after the run")
	require.NoError(t, again.Release())
}

func TestExecute_Journal(t *testing.T) {
	var c called
	journal := dbutil.NewTestStore(t)
	a, _ := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "deploy", Route: "<env>", Handler: c.handler(2)},
	}, WithJournal(journal))

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}

	_, err := a.Execute(context.Background(), []string{"deploy", "prod"})
	require.NoError(t, err)
	_, err = a.Execute(context.Background(), []string{"nope"})
	require.NoError(t, err)

	list, err := journal.List(domain.InvocationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, "nope", list[0].Command)
	require.Empty(t, list[0].Route)
	require.Equal(t, 1, list[0].ExitStatus)

	require.Equal(t, "deploy", list[1].Command)
	require.Equal(t, "deploy", list[1].Route)
	require.Equal(t, []string{"deploy", "prod"}, list[1].Args)
	require.Equal(t, 2, list[1].ExitStatus)
	require.Equal(t, 250*time.Millisecond, list[1].Duration)
	require.NotEmpty(t, list[1].ID)
}

type failingJournal struct{}

func (failingJournal) Record(domain.Invocation) error { return errors.New("disk full") }
func (failingJournal) List(domain.InvocationFilter) ([]domain.Invocation, error) {
	return nil, nil
}
func (failingJournal) Close() error { return nil }

func TestExecute_JournalFailureIsNotFatal(t *testing.T) {
	var c called
	a, _ := newTestApp(t, testConfig(), []route.Declaration{{Name: "report", Handler: c.handler(0)}},
		WithJournal(failingJournal{}))

	code, err := a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestExecute_Metrics(t *testing.T) {
	var c called
	rec := metrics.NewRecorder()
	a, _ := newTestApp(t, testConfig(), []route.Declaration{{Name: "report", Handler: c.handler(0)}},
		WithMetrics(rec))

	for i := 0; i < 2; i++ {
		_, err := a.Execute(context.Background(), []string{"report"})
		require.NoError(t, err)
	}
	_, err := a.Execute(context.Background(), []string{"nope"})
	require.NoError(t, err)

	expected := `
# HELP routeshell_invocations_total Total command invocations by exit status.
# TYPE routeshell_invocations_total counter
routeshell_invocations_total{command="nope",status="1"} 1
routeshell_invocations_total{command="report",status="0"} 2
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
		"routeshell_invocations_total"))
}

func TestExecute_Span(t *testing.T) {
	var c called
	tracer := &recordingTracer{}
	a, _ := newTestApp(t, testConfig(), []route.Declaration{
		{Name: "deploy", Route: "<env>", Handler: c.handler(0)},
	}, WithTracer(tracer))

	_, err := a.Execute(context.Background(), []string{"deploy", "prod"})
	require.NoError(t, err)

	require.Len(t, tracer.spans, 1)
	s := tracer.spans[0]
	require.Equal(t, "routeshell.run", s.name)
	require.True(t, s.ended)
	require.Equal(t, "deploy", s.attrs["routeshell.command"].AsString())
	require.Equal(t, "deploy", s.attrs["routeshell.route"].AsString())
	require.Equal(t, int64(0), s.attrs["routeshell.exit_status"].AsInt64())
	require.Equal(t, codes.Unset, s.status)
}

func TestExecute_NoopTracer(t *testing.T) {
	var c called
	a, _ := newTestApp(t, testConfig(), []route.Declaration{{Name: "report", Handler: c.handler(0)}},
		WithTracer(noop.NewTracerProvider().Tracer("test")))

	code, err := a.Execute(context.Background(), []string{"report"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestAddRoute(t *testing.T) {
	var c called
	a, _ := newTestApp(t, testConfig(), nil)

	require.NoError(t, a.AddRoute(route.Declaration{Name: "report", Handler: c.handler(0)}))
	require.True(t, a.Dispatcher().Has("report"))
	require.Error(t, a.AddRoute(route.Declaration{Name: "broken", Route: "<>"}))
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(config.Settings{
		Name: "demo", Version: "2.0.0", ShowVersion: true, Lock: true, LockDir: "data/lock",
	})
	require.Equal(t, Config{Name: "demo", Version: "2.0.0", ShowVersion: true, Lock: true, LockDir: "data/lock"}, cfg)
}
