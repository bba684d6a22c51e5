// Package completions generates shell completion scripts from the route
// registry: command words, the literal that follows them, and flags.
package completions

import (
	"sort"
	"strings"

	"github.com/footprint-tools/routeshell/internal/route"
)

// CommandInfo is one completable command level.
type CommandInfo struct {
	Name        string
	Path        []string // full path from the binary, e.g. ["routeshell", "config", "set"]
	Summary     string
	Subcommands []string
	Flags       []FlagInfo
}

// FlagInfo is one flag with its aliases.
type FlagInfo struct {
	Names       []string // "--name" first, then aliases
	Description string
	HasValue    bool
}

// ExtractCommands builds the command levels for binary from the registry.
// The first entry is always the root.
func ExtractCommands(binary string, reg *route.Registry) []CommandInfo {
	root := CommandInfo{Name: binary, Path: []string{binary}}
	commands := []CommandInfo{root}

	byWord := make(map[string][]*route.Route)
	var words []string
	for _, r := range reg.Routes() {
		word := r.Command()
		if word == "" {
			continue
		}
		if _, seen := byWord[word]; !seen {
			words = append(words, word)
		}
		byWord[word] = append(byWord[word], r)
	}
	sort.Strings(words)
	commands[0].Subcommands = words

	for _, word := range words {
		routes := byWord[word]
		commands = append(commands, level([]string{binary, word}, routes, 1))

		subs := make(map[string][]*route.Route)
		for _, r := range routes {
			if lits := r.Literals(); len(lits) > 1 {
				subs[lits[1]] = append(subs[lits[1]], r)
			}
		}
		for _, sub := range sortedKeys(subs) {
			commands = append(commands, level([]string{binary, word, sub}, subs[sub], 2))
		}
	}

	return commands
}

// level merges the routes sharing a literal prefix of the given depth.
func level(path []string, routes []*route.Route, depth int) CommandInfo {
	info := CommandInfo{Name: path[len(path)-1], Path: path}

	subs := make(map[string]bool)
	flags := make(map[string]FlagInfo)

	for _, r := range routes {
		lits := r.Literals()
		if info.Summary == "" && len(lits) == depth {
			info.Summary = r.ShortDescription()
		}
		if len(lits) > depth {
			subs[lits[depth]] = true
			continue
		}
		for _, seg := range r.Segments() {
			if seg.Kind != route.Flag {
				continue
			}
			if _, seen := flags[seg.Name]; seen {
				continue
			}
			f := FlagInfo{
				Names:    []string{"--" + seg.Name},
				HasValue: strings.Contains(seg.Text, "="),
			}
			for _, alias := range r.Aliases(seg.Name) {
				f.Names = append(f.Names, "--"+alias)
			}
			f.Description, _ = r.OptionDescription(seg.Name)
			flags[seg.Name] = f
		}
	}

	info.Subcommands = sortedKeys(subs)
	for _, name := range sortedKeys(flags) {
		info.Flags = append(info.Flags, flags[name])
	}
	return info
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindCommand finds a command by its path.
func FindCommand(commands []CommandInfo, path []string) *CommandInfo {
	for i := range commands {
		if pathsEqual(commands[i].Path, path) {
			return &commands[i]
		}
	}
	return nil
}

func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
