package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/format"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

// DefaultHistoryLimit bounds `history` when --limit is not given.
const DefaultHistoryLimit = 20

// History lists recorded invocations, newest first.
func History(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		return history(req, deps)
	})
}

func history(req *dispatchers.Request, deps Deps) error {
	if deps.Journal == nil {
		return errors.New("the journal is disabled; set journal=true to record invocations")
	}

	limit := req.Params.Int("limit", DefaultHistoryLimit)
	if limit <= 0 {
		return usage.InvalidArgument("limit", req.Params.String("limit", ""))
	}

	list, err := deps.Journal.List(domain.InvocationFilter{
		Command: req.Params.String("command", ""),
		Limit:   limit,
	})
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if len(list) == 0 {
		req.Console.WriteLine("no invocations recorded", ui.ColorGray)
		return nil
	}

	for _, inv := range list {
		status := ui.ColorGreen
		if inv.ExitStatus != 0 {
			status = ui.ColorRed
		}
		req.Console.Write(deps.Format.DateTime(inv.StartedAt)+"  ", ui.ColorGray)
		req.Console.Write(fmt.Sprintf("%3d", inv.ExitStatus), status)
		req.Console.Write(fmt.Sprintf("  %7s  ", format.Duration(inv.Duration)))
		req.Console.WriteLine(strings.Join(inv.Args, " "))
	}
	return nil
}
