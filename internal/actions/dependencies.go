// Package actions implements the built-in commands and the exec handler
// used by manifest routes.
package actions

import (
	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/format"
	"github.com/footprint-tools/routeshell/internal/route"
)

// Handler names the built-in routes refer to.
const (
	HelpHandler        = "help"
	VersionHandler     = "version"
	HistoryHandler     = "history"
	ConfigGetHandler   = "config.get"
	ConfigSetHandler   = "config.set"
	ConfigUnsetHandler = "config.unset"
	ConfigListHandler  = "config.list"
	CompletionsHandler = "completions"
	LogsHandler        = "logs"
)

// Deps is everything the built-in commands reach outside the request.
type Deps struct {
	AppName  string
	Version  string
	Binary   string // path used in completion instructions
	Registry *route.Registry
	Config   domain.ConfigProvider
	Journal  domain.InvocationStore // nil when the journal is disabled
	Format   format.Formatter
	LogPath  string

	// Browse opens the interactive route browser.
	Browse func(reg *route.Registry, title, selected string) error

	// Page shows long output; nil writes it straight to the console.
	Page func(content string)
}

// Factories returns one factory per built-in handler name, for
// dispatchers.WithFactories.
func Factories(deps Deps) map[string]dispatchers.Factory {
	wrap := func(fn func(Deps) dispatchers.Handler) dispatchers.Factory {
		return func() dispatchers.Handler { return fn(deps) }
	}
	return map[string]dispatchers.Factory{
		HelpHandler:        wrap(Help),
		VersionHandler:     wrap(Version),
		HistoryHandler:     wrap(History),
		ConfigGetHandler:   wrap(ConfigGet),
		ConfigSetHandler:   wrap(ConfigSet),
		ConfigUnsetHandler: wrap(ConfigUnset),
		ConfigListHandler:  wrap(ConfigList),
		CompletionsHandler: wrap(Completions),
		LogsHandler:        wrap(Logs),
	}
}
