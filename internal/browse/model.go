package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/routeshell/internal/route"
)

const scrollStep = 10

type model struct {
	title     string
	all       []*route.Route
	visible   []*route.Route
	cursor    int
	scroll    int
	width     int
	height    int
	filter    string
	filtering bool
	keys      keyMap
}

func newModel(routes []*route.Route, title string) model {
	return model{
		title:   title,
		all:     routes,
		visible: routes,
		keys:    defaultKeys(),
	}
}

func (m *model) selectName(name string) {
	for i, r := range m.visible {
		if r.Name() == name {
			m.cursor = i
			return
		}
	}
}

// current returns the highlighted route, nil when nothing is visible.
func (m model) current() *route.Route {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func (m *model) applyFilter() {
	selected := m.current()

	if m.filter == "" {
		m.visible = m.all
	} else {
		needle := strings.ToLower(m.filter)
		m.visible = nil
		for _, r := range m.all {
			if strings.Contains(strings.ToLower(r.Name()), needle) ||
				strings.Contains(strings.ToLower(r.ShortDescription()), needle) {
				m.visible = append(m.visible, r)
			}
		}
	}

	m.cursor = 0
	if selected != nil {
		m.selectName(selected.Name())
	}
	m.scroll = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			if m.filter == "" {
				return m, tea.Quit
			}
			m.filter = ""
			m.applyFilter()
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.PageUp):
			m.scroll = max(0, m.scroll-scrollStep)
		case key.Matches(msg, m.keys.PageDown):
			m.scroll += scrollStep
		case key.Matches(msg, m.keys.Home):
			m.cursor, m.scroll = 0, 0
		case key.Matches(msg, m.keys.End):
			m.cursor, m.scroll = max(0, len(m.visible)-1), 0
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
		}
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.applyFilter()
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// move shifts the cursor, wrapping at both ends.
func (m *model) move(delta int) {
	n := len(m.visible)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.scroll = 0
}
