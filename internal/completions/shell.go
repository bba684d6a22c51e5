package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell names a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ParseShell validates a shell name.
func ParseShell(name string) (Shell, error) {
	s := Shell(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Shells {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", name)
}

// RunningShell guesses the user's shell from $SHELL. Empty if unknown.
func RunningShell() Shell {
	s, err := ParseShell(filepath.Base(os.Getenv("SHELL")))
	if err != nil {
		return ""
	}
	return s
}

var bashCompletionPaths = []string{
	"/usr/share/bash-completion/bash_completion",
	"/etc/bash_completion",
	"/usr/local/etc/profile.d/bash_completion.sh",
	"/opt/homebrew/etc/profile.d/bash_completion.sh",
}

// IsBashCompletionInstalled reports whether the bash-completion package
// is present, which makes ~/.local/share/bash-completion auto-loaded.
func IsBashCompletionInstalled() bool {
	for _, p := range bashCompletionPaths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
