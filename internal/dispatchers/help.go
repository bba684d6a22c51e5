package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/ui/style"
)

// RenderUsage writes the "Available commands:" listing, one padded route
// name per line, in registry order.
func RenderUsage(console ui.Console, reg *route.Registry) {
	console.WriteLine("Available commands:", ui.ColorGreen)
	console.WriteLine("")

	names := reg.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	width += 2

	for _, name := range names {
		console.Write(" "+name, ui.ColorGreen)
		console.WriteLine(strings.Repeat(" ", width-len(name)))
	}
}

// formatUsage styles a pattern with the literal prefix in Info colour and
// the parameters muted.
func formatUsage(pattern string) string {
	cmdEnd := len(pattern)
	for i, c := range pattern {
		if c == '[' || c == '<' || (c == '-' && strings.HasPrefix(pattern[i:], "--")) {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(pattern[:cmdEnd])
	rest := ""
	if cmdEnd < len(pattern) {
		rest = pattern[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// Group is a set of routes sharing one dispatch key.
type Group struct {
	Command string
	Routes  []*route.Route
}

// Groups partitions the registry by dispatch key, keeping registry order
// inside each group.
func Groups(reg *route.Registry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range reg.Routes() {
		cmd := r.Command()
		i, ok := index[cmd]
		if !ok {
			i = len(groups)
			index[cmd] = i
			groups = append(groups, Group{Command: cmd})
		}
		groups[i].Routes = append(groups[i].Routes, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Command < groups[j].Command
	})
	return groups
}

// RenderOverview returns the full help page: usage line, then every route
// with its short description, grouped by command word.
func RenderOverview(reg *route.Registry, appName string) string {
	var out bytes.Buffer

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(appName + " <command> [arguments]"))
	out.WriteString("\n\n")

	width := 0
	for _, name := range reg.Names() {
		width = max(width, len(name))
	}

	out.WriteString("COMMANDS\n")
	for _, g := range Groups(reg) {
		for _, r := range g.Routes {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-*s", width, r.Name())), r.ShortDescription())
		}
	}
	out.WriteString("\n")

	fmt.Fprintf(&out, "See '%s help <command>' for detailed help on a specific command.\n", appName)
	return out.String()
}

// RenderRoute returns the help page for one route.
func RenderRoute(r *route.Route) string {
	var out bytes.Buffer

	out.WriteString(r.Name())
	if short := r.ShortDescription(); short != "" {
		out.WriteString(" - ")
		out.WriteString(short)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(r.Pattern()))
	out.WriteString("\n\n")

	if desc := r.Description(); desc != "" && desc != r.ShortDescription() {
		out.WriteString(desc)
		out.WriteString("\n\n")
	}

	var params []route.Segment
	for _, seg := range r.Segments() {
		if seg.IsParam() {
			params = append(params, seg)
		}
	}

	if len(params) > 0 {
		out.WriteString("OPTIONS\n")
		for _, seg := range params {
			label := seg.Text
			for _, alias := range r.Aliases(seg.Name) {
				label += ", --" + alias
			}
			text, _ := r.OptionDescription(seg.Name)
			if def, ok := r.Default(seg.Name); ok {
				text = strings.TrimSpace(fmt.Sprintf("%s (default: %v)", text, def))
			}
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", label)), text)
		}
		out.WriteString("\n")
	}

	return out.String()
}
