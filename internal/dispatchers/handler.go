package dispatchers

import (
	"context"
	"errors"

	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

// Request is what a handler receives for one invocation.
type Request struct {
	Route   *route.Route
	Params  route.Params
	Args    []string
	Console ui.Console
}

// Handler runs a command and returns its exit status.
type Handler interface {
	Handle(ctx context.Context, req *Request) int
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *Request) int

func (f HandlerFunc) Handle(ctx context.Context, req *Request) int {
	return f(ctx, req)
}

// Factory builds a handler with no arguments.
type Factory func() Handler

// FromErrorFunc adapts an error-returning function. A nil error exits 0.
// A usage.Error is printed with its own exit code; any other error is
// printed and exits 1.
func FromErrorFunc(fn func(ctx context.Context, req *Request) error) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) int {
		err := fn(ctx, req)
		if err == nil {
			return 0
		}
		return ReportError(req.Console, err)
	})
}

// ReportError writes err to console and returns the exit code it maps to.
func ReportError(console ui.Console, err error) int {
	var uerr *usage.Error
	if errors.As(err, &uerr) {
		console.WriteLine(uerr.Error(), ui.ColorRed)
		if uerr.Detail != "" {
			console.WriteLine(uerr.Detail)
		}
		return uerr.ExitCode()
	}
	console.WriteLine("Error: "+err.Error(), ui.ColorRed)
	return 1
}
