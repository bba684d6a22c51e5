// Package cli declares the built-in routes and the global flags every
// routeshell binary understands.
package cli

import (
	"github.com/footprint-tools/routeshell/internal/actions"
	"github.com/footprint-tools/routeshell/internal/route"
)

func noPrefix() *bool {
	f := false
	return &f
}

// BuiltinRoutes returns the declarations of the built-in commands. Their
// handlers are factory names from actions.Factories.
func BuiltinRoutes() []route.Declaration {
	return []route.Declaration{
		{
			Name:             "help",
			Route:            "[command] [--interactive]",
			Aliases:          map[string]string{"i": "interactive"},
			ShortDescription: "Show help for all commands or one command",
			OptionsDescriptions: map[string]string{
				"command":       "Route name or command word",
				"--interactive": "Browse routes in a full-screen view",
			},
			Handler: actions.HelpHandler,
		},
		{
			Name:             "version",
			ShortDescription: "Show the application version",
			Handler:          actions.VersionHandler,
		},
		{
			Name:             "history",
			Route:            "[--limit=] [--command=]",
			Constraints:      map[string]string{"limit": `^\d+$`},
			Defaults:         map[string]any{"limit": actions.DefaultHistoryLimit},
			Filters:          map[string]any{"limit": "int"},
			ShortDescription: "List recent invocations from the journal",
			OptionsDescriptions: map[string]string{
				"--limit=":   "Maximum number of entries",
				"--command=": "Only show runs of this command",
			},
			Handler: actions.HistoryHandler,
		},
		{
			Name:                "config get",
			Route:               "<key>",
			ShortDescription:    "Print a configuration value",
			OptionsDescriptions: map[string]string{"<key>": "Configuration key"},
			Handler:             actions.ConfigGetHandler,
		},
		{
			Name:             "config set",
			Route:            "<key> <value>",
			ShortDescription: "Write a configuration value",
			OptionsDescriptions: map[string]string{
				"<key>":   "Configuration key",
				"<value>": "Value to assign",
			},
			Handler: actions.ConfigSetHandler,
		},
		{
			Name:                "config unset",
			Route:               "<key>",
			ShortDescription:    "Restore a configuration key to its default",
			OptionsDescriptions: map[string]string{"<key>": "Configuration key"},
			Handler:             actions.ConfigUnsetHandler,
		},
		{
			Name:             "config list",
			ShortDescription: "List every configuration value",
			Handler:          actions.ConfigListHandler,
		},
		{
			Name:             "logs",
			Route:            "[--limit=] [--json] [--clear]",
			Constraints:      map[string]string{"limit": `^\d+$`},
			Filters:          map[string]any{"limit": "int"},
			ShortDescription: "Show the tail of the log file",
			OptionsDescriptions: map[string]string{
				"--limit=": "Number of lines (default 50)",
				"--json":   "Print entries as JSON",
				"--clear":  "Empty the log file",
			},
			Handler: actions.LogsHandler,
		},
		{
			Name:             "completions",
			Route:            "completions [shell] [--script]",
			PrependCommand:   noPrefix(),
			ShortDescription: "Print shell completion setup",
			OptionsDescriptions: map[string]string{
				"shell":    "bash, zsh or fish (defaults to $SHELL)",
				"--script": "Print the completion script itself",
			},
			Handler: actions.CompletionsHandler,
		},
	}
}
