package actions

import (
	"context"
	"strings"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

// Help shows the command overview, the pages of one command, or the
// interactive browser.
func Help(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		return help(req, deps)
	})
}

func help(req *dispatchers.Request, deps Deps) error {
	topic := strings.TrimSpace(strings.Join(
		append([]string{req.Params.String("command", "")}, req.Params.Rest()...), " "))

	if req.Params.Bool("interactive") {
		return deps.Browse(deps.Registry, deps.AppName, topic)
	}

	if topic == "" {
		show(req.Console, deps, dispatchers.RenderOverview(deps.Registry, deps.AppName))
		return nil
	}

	routes := routesFor(deps.Registry, topic)
	if len(routes) == 0 {
		return usage.UnrecognizedCommand([]string{topic},
			dispatchers.FindSimilarRoutes(topic, deps.Registry, 3)...)
	}

	var pages []string
	for _, r := range routes {
		pages = append(pages, dispatchers.RenderRoute(r))
	}
	show(req.Console, deps, strings.Join(pages, "\n"))
	return nil
}

// routesFor returns the route named topic, or every route whose literal
// prefix starts with the words of topic.
func routesFor(reg *route.Registry, topic string) []*route.Route {
	if r, ok := reg.Lookup(topic); ok {
		return []*route.Route{r}
	}

	words := strings.Fields(topic)
	var out []*route.Route
	for _, r := range reg.Routes() {
		lits := r.Literals()
		if len(lits) < len(words) {
			continue
		}
		match := true
		for i, w := range words {
			if lits[i] != w {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

func show(console ui.Console, deps Deps, content string) {
	if deps.Page != nil {
		deps.Page(content)
		return
	}
	ui.WriteLines(console, strings.TrimRight(content, "\n"))
}
