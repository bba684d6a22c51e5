package ui

import (
	"strings"
	"sync"
)

// Line is one captured write.
type Line struct {
	Text    string
	Colors  []Color
	Newline bool
}

// Buffer is an in-memory Console. It keeps the colour hints it was given
// without rendering them, which makes it suitable for tests and for
// capturing output that is paged later.
type Buffer struct {
	mu    sync.Mutex
	lines []Line
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(text string, colors ...Color) {
	b.add(Line{Text: text, Colors: colors})
}

func (b *Buffer) WriteLine(text string, colors ...Color) {
	b.add(Line{Text: text, Colors: colors, Newline: true})
}

func (b *Buffer) add(l Line) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, l)
}

// Lines returns a copy of every captured write.
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// String returns the captured text without colour.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.Text)
		if l.Newline {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Reset discards everything captured so far.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

var _ Console = (*Buffer)(nil)
