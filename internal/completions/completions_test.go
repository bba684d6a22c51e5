package completions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/routeshell/internal/route"
)

func testRegistry(t *testing.T) *route.Registry {
	t.Helper()
	reg := route.NewRegistry(nil)
	decls := []route.Declaration{
		{
			Name:                "config get",
			Route:               "<key> [--json]",
			ShortDescription:    "Get a setting",
			OptionsDescriptions: map[string]string{"--json": "Output as JSON"},
		},
		{Name: "config set", Route: "<key> <value>", ShortDescription: "Set a setting"},
		{
			Name:             "setup",
			Route:            "[--force]",
			ShortDescription: "Start tracking",
			Aliases:          map[string]string{"f": "force"},
			OptionsDescriptions: map[string]string{
				"force": "Force installation",
			},
		},
		{Name: "deploy", Route: "<env> [--limit=]", Description: "Deploy a build\nLonger text."},
	}
	for _, d := range decls {
		_, err := reg.Register(d)
		require.NoError(t, err)
	}
	return reg
}

func TestExtractCommands(t *testing.T) {
	commands := ExtractCommands("rs", testRegistry(t))

	root := FindCommand(commands, []string{"rs"})
	require.NotNil(t, root)
	require.Equal(t, []string{"config", "deploy", "setup"}, root.Subcommands)

	config := FindCommand(commands, []string{"rs", "config"})
	require.NotNil(t, config)
	require.Equal(t, []string{"get", "set"}, config.Subcommands)
	require.Empty(t, config.Flags)

	get := FindCommand(commands, []string{"rs", "config", "get"})
	require.NotNil(t, get)
	require.Equal(t, "Get a setting", get.Summary)
	require.Equal(t, []FlagInfo{{Names: []string{"--json"}, Description: "Output as JSON"}}, get.Flags)

	setup := FindCommand(commands, []string{"rs", "setup"})
	require.NotNil(t, setup)
	require.Equal(t, "Start tracking", setup.Summary)
	require.Equal(t, []string{"--force", "--f"}, setup.Flags[0].Names)

	deploy := FindCommand(commands, []string{"rs", "deploy"})
	require.NotNil(t, deploy)
	require.Equal(t, "Deploy a build", deploy.Summary)
	require.True(t, deploy.Flags[0].HasValue)
}

func TestExtractCommands_EmptyRegistry(t *testing.T) {
	commands := ExtractCommands("rs", route.NewRegistry(nil))
	require.Len(t, commands, 1)
	require.Empty(t, commands[0].Subcommands)
}

func TestFindCommand_NotFound(t *testing.T) {
	commands := []CommandInfo{{Name: "rs", Path: []string{"rs"}}}

	require.Nil(t, FindCommand(commands, []string{"rs", "missing"}))
	require.Nil(t, FindCommand(commands, []string{}))
}

func TestParseShell(t *testing.T) {
	s, err := ParseShell("ZSH")
	require.NoError(t, err)
	require.Equal(t, ShellZsh, s)

	_, err = ParseShell("powershell")
	require.ErrorContains(t, err, "unsupported shell")
}

func TestRunningShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/fish")
	require.Equal(t, ShellFish, RunningShell())

	t.Setenv("SHELL", "/bin/tcsh")
	require.Equal(t, Shell(""), RunningShell())
}

func TestSourceInstructions(t *testing.T) {
	require.Equal(t, `eval "$(/bin/rs completions bash --script)"`, SourceInstructions(ShellBash, "/bin/rs"))
	require.Equal(t, `/bin/rs completions fish --script | source`, SourceInstructions(ShellFish, "/bin/rs"))
	require.Equal(t, "~/.zshrc", RcFile(ShellZsh))
	require.Empty(t, RcFile(Shell("csh")))
}

func TestAutoInstallPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, home+"/.config/fish/completions/rs.fish", AutoInstallPath(ShellFish, "rs"))
	require.Empty(t, AutoInstallPath(ShellZsh, "rs"))
}
