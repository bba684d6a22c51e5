package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/footprint-tools/routeshell/internal/completions"
	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/ui"
)

// Completions prints the completion script with --script, otherwise the
// instructions for installing it.
func Completions(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		return completionsCmd(req, deps)
	})
}

func completionsCmd(req *dispatchers.Request, deps Deps) error {
	var shell completions.Shell
	if name := req.Params.String("shell", ""); name != "" {
		s, err := completions.ParseShell(name)
		if err != nil {
			return err
		}
		shell = s
	} else {
		shell = completions.RunningShell()
		if shell == "" {
			return errors.New("could not detect shell, specify one: bash, zsh or fish")
		}
	}

	if req.Params.Bool("script") {
		commands := completions.ExtractCommands(deps.AppName, deps.Registry)
		script, err := completions.Script(shell, commands)
		if err != nil {
			return err
		}
		req.Console.Write(script)
		return nil
	}

	printInstructions(req.Console, shell, deps)
	return nil
}

func printInstructions(console ui.Console, shell completions.Shell, deps Deps) {
	bin := deps.Binary
	if bin == "" {
		bin = deps.AppName
	}

	console.WriteLine("To enable completions, choose one of the following:")
	console.WriteLine("")

	option := 1
	if path := completions.AutoInstallPath(shell, filepath.Base(deps.AppName)); path != "" {
		console.WriteLine(fmt.Sprintf("%d. Write to auto-load directory:", option))
		console.WriteLine(fmt.Sprintf("   %s completions %s --script > %s", bin, shell, path), ui.ColorCyan)
		console.WriteLine("")
		option++
	}

	console.WriteLine(fmt.Sprintf("%d. Add to %s:", option, completions.RcFile(shell)))
	console.WriteLine("   "+completions.SourceInstructions(shell, bin), ui.ColorCyan)
}
