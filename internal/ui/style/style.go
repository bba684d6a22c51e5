// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported for line output.
// All styling is semantic (Success, Warning, Error, etc.) rather than visual.
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the ANSI colour numbers (or "bold") used per semantic role.
type Palette struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// DarkPalette uses bright colours for dark terminal backgrounds.
var DarkPalette = Palette{
	Success: "10",
	Warning: "11",
	Error:   "9",
	Info:    "14",
	Muted:   "245",
	Header:  "bold",
}

// LightPalette uses dark colours for light terminal backgrounds.
var LightPalette = Palette{
	Success: "2",
	Warning: "3",
	Error:   "1",
	Info:    "4",
	Muted:   "240",
	Header:  "bold",
}

var (
	enabled bool
	palette Palette

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init sets whether styling is enabled. NO_COLOR and ROUTESHELL_NO_COLOR
// (any non-empty value) disable styling regardless of enable.
//
// Call once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("ROUTESHELL_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if !enabled {
		return
	}

	palette = DarkPalette
	if !termenv.HasDarkBackground() {
		palette = LightPalette
	}
	initStyles(palette)
}

// CurrentPalette returns the palette chosen by Init.
func CurrentPalette() Palette {
	return palette
}

func initStyles(p Palette) {
	// Force ANSI256 so styles render even when lipgloss cannot detect a TTY.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(p.Success)
	warningStyle = makeStyle(p.Warning)
	errorStyle = makeStyle(p.Error)
	infoStyle = makeStyle(p.Info)
	headerStyle = makeStyle(p.Header)
	mutedStyle = makeStyle(p.Muted)
}

// makeStyle creates a lipgloss style from "bold" or an ANSI colour number.
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles text for informational messages.
func Info(text string) string { return render(infoStyle, text) }

// Header styles text for section headers or titles.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles text for less important or secondary information.
func Muted(text string) string { return render(mutedStyle, text) }
