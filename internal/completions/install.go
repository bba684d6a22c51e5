package completions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Script returns the completion script for shell.
func Script(shell Shell, commands []CommandInfo) (string, error) {
	switch shell {
	case ShellBash:
		return GenerateBash(commands), nil
	case ShellZsh:
		return GenerateZsh(commands), nil
	case ShellFish:
		return GenerateFish(commands), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

// PrintCompletions writes the completion script for shell to w.
func PrintCompletions(w io.Writer, shell Shell, commands []CommandInfo) error {
	script, err := Script(shell, commands)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, script)
	return err
}

// BinaryPath resolves the running executable, following symlinks.
// fallback is returned when the executable cannot be found.
func BinaryPath(fallback string) string {
	exe, err := os.Executable()
	if err != nil {
		return fallback
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

// SourceInstructions returns the line that loads completions for shell.
func SourceInstructions(shell Shell, bin string) string {
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s completions %s --script)"`, bin, shell)
	case ShellFish:
		return fmt.Sprintf(`%s completions fish --script | source`, bin)
	default:
		return ""
	}
}

// RcFile returns the rc file path for the given shell.
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	default:
		return ""
	}
}

// AutoInstallPath returns where the shell auto-loads completions for name,
// or "" when the shell has no such directory.
func AutoInstallPath(shell Shell, name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", name+".fish")
	case ShellBash:
		if IsBashCompletionInstalled() {
			return filepath.Join(home, ".local", "share", "bash-completion", "completions", name)
		}
		return ""
	default:
		return ""
	}
}
