package cli

import "strings"

// Globals are the flags accepted before routing, anywhere in argv.
type Globals struct {
	NoColor bool
	NoPager bool
	Pager   string // --pager=<cmd>
	Routes  string // --routes=<path>
}

// ExtractGlobals removes the global flags from args and returns them with
// the remaining tokens. Everything after "--" is left alone, minus the
// separator itself.
func ExtractGlobals(args []string) (Globals, []string) {
	var g Globals
	rest := make([]string, 0, len(args))

	for i, arg := range args {
		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		switch name, value, hasValue := strings.Cut(arg, "="); {
		case arg == "--no-color":
			g.NoColor = true
		case arg == "--no-pager":
			g.NoPager = true
		case name == "--pager" && hasValue:
			g.Pager = value
		case name == "--routes" && hasValue:
			g.Routes = value
		default:
			rest = append(rest, arg)
		}
	}

	return g, rest
}
