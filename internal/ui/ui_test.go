package ui

import (
	"bytes"
	"testing"

	"github.com/footprint-tools/routeshell/internal/ui/style"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteLinePlain(t *testing.T) {
	style.Init(false)
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	w.Write("Available ")
	w.WriteLine("commands:", ColorYellow)

	require.Equal(t, "Available commands:\n", buf.String())
}

func TestWriter_PagerNonTerminalWritesDirect(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf,
		WithConfigGetter(func(string) (string, bool) { return "definitely-not-a-pager", true }),
	)

	w.Pager("paged content\n")

	require.Equal(t, "paged content\n", buf.String())
}

func TestWriter_PagerDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, WithPagerDisabled(), WithPagerOverride("less"))

	w.Pager("x")

	require.Equal(t, "x", buf.String())
}

func TestBuffer_KeepsHints(t *testing.T) {
	b := NewBuffer()
	b.WriteLine("Unrecognized command: foo", ColorRed)
	b.Write("partial")

	lines := b.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, []Color{ColorRed}, lines[0].Colors)
	require.True(t, lines[0].Newline)
	require.False(t, lines[1].Newline)
	require.Equal(t, "Unrecognized command: foo\npartial", b.String())

	b.Reset()
	require.Empty(t, b.String())
}

func TestPaint_DisabledIsIdentity(t *testing.T) {
	style.Init(false)
	require.Equal(t, "text", Paint("text", ColorGreen, ColorBold))
}

func TestWriteLines(t *testing.T) {
	b := NewBuffer()
	WriteLines(b, "one\ntwo\n", ColorGray)

	require.Equal(t, "one\ntwo\n", b.String())
	require.Len(t, b.Lines(), 2)
}

func TestColor_String(t *testing.T) {
	require.Equal(t, "red", ColorRed.String())
	require.Equal(t, "none", Color(42).String())
}
