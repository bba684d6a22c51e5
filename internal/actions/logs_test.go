package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/routeshell/internal/ui"
)

const sampleLog = `[2025-01-29 10:30:45] INFO: app: deploy exited 0 after 1.2s
[2025-01-29 10:31:02] WARN: app: journal: disk full
not a log line
[2025-01-29 10:32:10] ERROR: dispatch: command "report": not invocable
`

func logDeps(t *testing.T, content string) Deps {
	t.Helper()
	deps := testDeps(t, testRegistry(t))
	deps.LogPath = filepath.Join(t.TempDir(), "routeshell.log")
	if content != "" {
		require.NoError(t, os.WriteFile(deps.LogPath, []byte(content), 0600))
	}
	return deps
}

func TestLogs_Tail(t *testing.T) {
	deps := logDeps(t, sampleLog)

	code, buf := handle(t, deps, LogsHandler, "logs", "--limit=2")

	require.Equal(t, 0, code)
	lines := buf.Lines()
	require.Len(t, lines, 2)
	require.Equal(t, "not a log line", lines[0].Text)
	require.Equal(t, []ui.Color{ui.ColorRed}, lines[1].Colors)
}

func TestLogs_Colors(t *testing.T) {
	deps := logDeps(t, sampleLog)

	_, buf := handle(t, deps, LogsHandler, "logs")

	var colors []ui.Color
	for _, l := range buf.Lines() {
		colors = append(colors, l.Colors...)
	}
	require.Equal(t, []ui.Color{ui.ColorNone, ui.ColorYellow, ui.ColorNone, ui.ColorRed}, colors)
}

func TestLogs_DefaultLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "[2025-01-29 10:00:%02d] DEBUG: line %d\n", i, i)
	}
	deps := logDeps(t, sb.String())

	_, buf := handle(t, deps, LogsHandler, "logs")

	lines := buf.Lines()
	require.Len(t, lines, defaultLogLimit)
	require.True(t, strings.HasSuffix(lines[0].Text, "line 10"))
}

func TestLogs_JSON(t *testing.T) {
	deps := logDeps(t, sampleLog)

	code, buf := handle(t, deps, LogsHandler, "logs", "--json")
	require.Equal(t, 0, code)

	var entries []logEntry
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entries))
	require.Len(t, entries, 4)
	require.Equal(t, logEntry{Timestamp: "2025-01-29 10:31:02", Level: "WARN", Message: "app: journal: disk full"}, entries[1])
	require.Equal(t, logEntry{Message: "not a log line", Raw: true}, entries[2])
}

func TestLogs_Missing(t *testing.T) {
	deps := logDeps(t, "")

	code, buf := handle(t, deps, LogsHandler, "logs")
	require.Equal(t, 0, code)
	require.Equal(t, "No log file found at "+deps.LogPath+"\n", buf.String())

	_, buf = handle(t, deps, LogsHandler, "logs", "--json")
	require.Equal(t, "[]\n", buf.String())
}

func TestLogs_Clear(t *testing.T) {
	deps := logDeps(t, sampleLog)

	code, buf := handle(t, deps, LogsHandler, "logs", "--clear")
	require.Equal(t, 0, code)
	require.Equal(t, "Log file cleared\n", buf.String())

	info, err := os.Stat(deps.LogPath)
	require.NoError(t, err)
	require.Zero(t, info.Size())

	_, buf = handle(t, deps, LogsHandler, "logs")
	require.Equal(t, "Log file is empty\n", buf.String())
}
