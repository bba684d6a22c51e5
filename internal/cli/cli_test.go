package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/routeshell/internal/actions"
	"github.com/footprint-tools/routeshell/internal/route"
)

func builtinRegistry(t *testing.T) *route.Registry {
	t.Helper()
	reg := route.NewRegistry(nil)
	for _, d := range BuiltinRoutes() {
		_, err := reg.Register(d)
		require.NoError(t, err, d.Name)
	}
	return reg
}

func TestBuiltinRoutes_Compile(t *testing.T) {
	reg := builtinRegistry(t)

	require.Equal(t, []string{
		"completions", "config get", "config list", "config set", "config unset",
		"help", "history", "logs", "version",
	}, reg.Names())
}

func TestBuiltinRoutes_HandlersHaveFactories(t *testing.T) {
	factories := actions.Factories(actions.Deps{})
	for _, d := range BuiltinRoutes() {
		require.True(t, d.HasHandler(), d.Name)
		require.Contains(t, factories, d.Handler, d.Name)
	}
}

func TestBuiltinRoutes_Match(t *testing.T) {
	reg := builtinRegistry(t)

	tests := []struct {
		args  []string
		route string
		check func(t *testing.T, p route.Params)
	}{
		{[]string{"help"}, "help", func(t *testing.T, p route.Params) {
			require.False(t, p.Has("command"))
		}},
		{[]string{"help", "config", "--i"}, "help", func(t *testing.T, p route.Params) {
			require.Equal(t, "config", p.String("command", ""))
			require.True(t, p.Bool("interactive"))
		}},
		{[]string{"history"}, "history", func(t *testing.T, p route.Params) {
			require.Equal(t, actions.DefaultHistoryLimit, p.Int("limit", 0))
		}},
		{[]string{"history", "--limit=5", "--command=deploy"}, "history", func(t *testing.T, p route.Params) {
			require.Equal(t, 5, p.Int("limit", 0))
			require.Equal(t, "deploy", p.String("command", ""))
		}},
		{[]string{"config", "set", "lock", "true"}, "config set", func(t *testing.T, p route.Params) {
			require.Equal(t, "lock", p.String("key", ""))
			require.Equal(t, "true", p.String("value", ""))
		}},
		{[]string{"config", "list"}, "config list", nil},
		{[]string{"logs", "--limit=10", "--json"}, "logs", func(t *testing.T, p route.Params) {
			require.Equal(t, 10, p.Int("limit", 0))
			require.True(t, p.Bool("json"))
			require.False(t, p.Bool("clear"))
		}},
		{[]string{"completions", "zsh", "--script"}, "completions", func(t *testing.T, p route.Params) {
			require.Equal(t, "zsh", p.String("shell", ""))
			require.True(t, p.Bool("script"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			r, ok := reg.Match(tt.args)
			require.True(t, ok)
			require.Equal(t, tt.route, r.Name())
			if tt.check != nil {
				tt.check(t, reg.Matched())
			}
		})
	}

	_, ok := reg.Match([]string{"history", "--limit=abc"})
	require.False(t, ok)
}

func TestExtractGlobals(t *testing.T) {
	g, rest := ExtractGlobals([]string{
		"--no-color", "deploy", "--pager=less -R", "prod", "--no-pager", "--routes=/etc/rs", "--force",
	})

	require.True(t, g.NoColor)
	require.True(t, g.NoPager)
	require.Equal(t, "less -R", g.Pager)
	require.Equal(t, "/etc/rs", g.Routes)
	require.Equal(t, []string{"deploy", "prod", "--force"}, rest)
}

func TestExtractGlobals_Separator(t *testing.T) {
	g, rest := ExtractGlobals([]string{"run", "--", "--no-color", "x"})

	require.False(t, g.NoColor)
	require.Equal(t, []string{"run", "--no-color", "x"}, rest)
}

func TestExtractGlobals_Empty(t *testing.T) {
	g, rest := ExtractGlobals(nil)
	require.Equal(t, Globals{}, g)
	require.Empty(t, rest)
}
