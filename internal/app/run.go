package app

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/footprint-tools/routeshell/internal/domain"
)

// run tracks one invocation for the journal, metrics and trace span.
type run struct {
	app     *Application
	args    []string
	route   string
	started time.Time
}

func newRun(a *Application, args []string) *run {
	return &run{app: a, args: args, started: a.now()}
}

// finish records the outcome everywhere it is wanted and returns status.
// Sink failures are logged, never surfaced.
func (r *run) finish(span trace.Span, status int, err error) int {
	a := r.app
	took := a.now().Sub(r.started)
	command := r.args[0]

	span.SetAttributes(
		attribute.String("routeshell.command", command),
		attribute.String("routeshell.route", r.route),
		attribute.Int("routeshell.exit_status", status),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if a.journal != nil {
		inv := domain.Invocation{
			Command:    command,
			Route:      r.route,
			Args:       r.args,
			ExitStatus: status,
			StartedAt:  r.started,
			Duration:   took,
		}
		if jerr := a.journal.Record(inv); jerr != nil {
			a.logger.Warn("app: journal: %v", jerr)
		}
	}

	if a.metrics != nil {
		a.metrics.Observe(command, status, r.started, took)
		if merr := a.metrics.Flush(); merr != nil {
			a.logger.Warn("app: metrics: %v", merr)
		}
	}

	a.logger.Info("app: %s exited %d after %s", command, status, took)
	return status
}
