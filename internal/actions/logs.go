package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/ui"
)

const defaultLogLimit = 50

// logEntryRegex matches lines like: [2025-01-29 10:30:45] INFO: message
var logEntryRegex = regexp.MustCompile(`^\[([^\]]+)\]\s+(DEBUG|INFO|WARN|ERROR):\s*(.*)$`)

// Logs prints the tail of the log file, as text or --json, or empties it
// with --clear.
func Logs(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		if req.Params.Bool("clear") {
			return clearLogs(req.Console, deps.LogPath)
		}
		return viewLogs(req, deps)
	})
}

func viewLogs(req *dispatchers.Request, deps Deps) error {
	jsonOutput := req.Params.Bool("json")

	content, err := os.ReadFile(deps.LogPath)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(content) == 0) {
		switch {
		case jsonOutput:
			req.Console.WriteLine("[]")
		case err != nil:
			req.Console.WriteLine("No log file found at "+deps.LogPath, ui.ColorGray)
		default:
			req.Console.WriteLine("Log file is empty", ui.ColorGray)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")

	limit := req.Params.Int("limit", defaultLogLimit)
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	if jsonOutput {
		return logsJSON(req.Console, lines)
	}

	for _, line := range lines {
		req.Console.WriteLine(line, logLineColor(line))
	}
	return nil
}

type logEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
	Raw       bool   `json:"raw,omitempty"`
}

func logsJSON(console ui.Console, lines []string) error {
	entries := make([]logEntry, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if m := logEntryRegex.FindStringSubmatch(line); m != nil {
			entries = append(entries, logEntry{Timestamp: m[1], Level: m[2], Message: m[3]})
			continue
		}
		entries = append(entries, logEntry{Message: line, Raw: true})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	ui.WriteLines(console, string(data))
	return nil
}

func clearLogs(console ui.Console, path string) error {
	if err := os.WriteFile(path, nil, 0600); err != nil {
		return fmt.Errorf("clear log file: %w", err)
	}
	console.WriteLine("Log file cleared", ui.ColorGreen)
	return nil
}

func logLineColor(line string) ui.Color {
	m := logEntryRegex.FindStringSubmatch(line)
	if m == nil {
		return ui.ColorNone
	}
	switch m[2] {
	case "ERROR":
		return ui.ColorRed
	case "WARN":
		return ui.ColorYellow
	case "DEBUG":
		return ui.ColorGray
	}
	return ui.ColorNone
}
