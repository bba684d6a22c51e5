package browse

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/ui/style"
)

func (m model) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	mainHeight := height - 2
	sidebarWidth := min(max(width/4, 24), 36)
	contentWidth := width - sidebarWidth - 1

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(sidebarWidth, mainHeight),
		m.renderContent(contentWidth, mainHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter(width))
}

func (m model) renderSidebar(width, height int) string {
	palette := style.CurrentPalette()
	visibleHeight := max(height-2, 1)

	var lines []string
	if m.title != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(m.title))
		visibleHeight--
	}

	offset := 0
	if m.cursor >= visibleHeight {
		offset = m.cursor - visibleHeight + 1
	}

	for i := offset; i < len(m.visible) && i < offset+visibleHeight; i++ {
		name := m.visible[i].Name()
		itemStyle := lipgloss.NewStyle().Width(width - 4)
		prefix := "  "
		if i == m.cursor {
			prefix = "▸ "
			itemStyle = itemStyle.Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color(palette.Info))
		}
		lines = append(lines, prefix+itemStyle.Render(name))
	}

	if len(m.visible) == 0 {
		lines = append(lines, style.Muted("no matching routes"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m model) renderContent(width, height int) string {
	r := m.current()
	if r == nil {
		return ""
	}

	lines := strings.Split(strings.TrimRight(dispatchers.RenderRoute(r), "\n"), "\n")
	scroll := min(m.scroll, max(len(lines)-1, 0))
	lines = lines[scroll:]
	if len(lines) > height {
		lines = lines[:height]
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func (m model) renderFooter(width int) string {
	var parts []string
	if m.filtering || m.filter != "" {
		parts = append(parts, "/"+m.filter)
	}
	for _, b := range m.keys.shortHelp(m.filtering) {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return lipgloss.NewStyle().
		Width(width).
		PaddingTop(1).
		Render(style.Muted(strings.Join(parts, "  ·  ")))
}
