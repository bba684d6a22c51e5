// Package ui provides the line-oriented output sink used by routed commands.
//
// SECURITY NOTE: The pager functionality intentionally allows execution of
// arbitrary commands specified via config or $PAGER. This is standard
// behavior for CLI tools (similar to git, less, man) and requires local
// access to exploit. Users should only configure pagers they trust.
package ui

import (
	"strings"

	"github.com/footprint-tools/routeshell/internal/ui/style"
)

// Color is a hint attached to a line of output. Consoles may render it or
// ignore it; callers never depend on how it is shown.
type Color int

const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorGray
	ColorBold
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	case ColorCyan:
		return "cyan"
	case ColorGray:
		return "gray"
	case ColorBold:
		return "bold"
	default:
		return "none"
	}
}

// Console is the output sink handed to the application and every handler.
type Console interface {
	// Write emits text without a trailing newline.
	Write(text string, colors ...Color)

	// WriteLine emits text followed by a newline.
	WriteLine(text string, colors ...Color)
}

// Paint renders text with the given hints through the style package.
// Hints are applied in order; with styling disabled text is returned as is.
func Paint(text string, colors ...Color) string {
	for _, c := range colors {
		switch c {
		case ColorGreen:
			text = style.Success(text)
		case ColorYellow:
			text = style.Warning(text)
		case ColorRed:
			text = style.Error(text)
		case ColorCyan:
			text = style.Info(text)
		case ColorGray:
			text = style.Muted(text)
		case ColorBold:
			text = style.Header(text)
		}
	}
	return text
}

// WriteLines writes every line of a multi-line block with the same hints.
func WriteLines(c Console, block string, colors ...Color) {
	block = strings.TrimSuffix(block, "\n")
	for _, line := range strings.Split(block, "\n") {
		c.WriteLine(line, colors...)
	}
}
