// Package browse is the full-screen route browser behind `help --interactive`.
package browse

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/footprint-tools/routeshell/internal/route"
)

// ErrNotTerminal is returned when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("route browser requires an interactive terminal")

// Run opens the browser over every route in reg and blocks until the user
// quits. selected is the route name to start on; empty starts at the top.
func Run(reg *route.Registry, title, selected string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	m := newModel(reg.Routes(), title)
	m.selectName(selected)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
