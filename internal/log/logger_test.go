package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestLogger_BasicLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(logPath, LevelDebug)
	require.NoError(t, err)

	logger.Debug("debug message")
	logger.Info("info %s", "message")
	logger.Warn("warning message")
	logger.Error("error message")
	require.NoError(t, logger.Close())

	content := readLog(t, logPath)
	require.Contains(t, content, "DEBUG: debug message")
	require.Contains(t, content, "INFO: info message")
	require.Contains(t, content, "WARN: warning message")
	require.Contains(t, content, "ERROR: error message")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")

	out := buf.String()
	require.NotContains(t, out, "DEBUG")
	require.NotContains(t, out, "INFO")
	require.Contains(t, out, "WARN: warning message")
	require.Contains(t, out, "ERROR: error message")
}

func TestLogger_FilePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := New(logPath, LevelInfo)
	require.NoError(t, err)
	logger.Info("test message")
	require.NoError(t, logger.Close())

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(logPath))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestLogger_AppendMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	first, err := New(logPath, LevelInfo)
	require.NoError(t, err)
	first.Info("first message")
	require.NoError(t, first.Close())

	second, err := New(logPath, LevelInfo)
	require.NoError(t, err)
	second.Info("second message")
	require.NoError(t, second.Close())

	content := readLog(t, logPath)
	require.Contains(t, content, "first message")
	require.Contains(t, content, "second message")
}

func TestLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Info("enabled message")
	logger.SetEnabled(false)
	logger.Info("disabled message")
	logger.SetEnabled(true)
	logger.Info("enabled again")

	out := buf.String()
	require.Contains(t, out, "enabled message")
	require.NotContains(t, out, "disabled message")
	require.Contains(t, out, "enabled again")
}

func TestLogger_WithFieldSortsKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug)

	logger.WithField("route", "deploy <env>").WithField("command", "deploy").Info("matched")

	require.Contains(t, buf.String(), "INFO: matched command=deploy route=deploy <env>")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}

func TestLogger_Writer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug)

	_, err := logger.Writer(LevelInfo).Write([]byte("message from writer\n"))
	require.NoError(t, err)

	require.Contains(t, buf.String(), "INFO: message from writer\n")
}

func TestLogger_NilReceiver(t *testing.T) {
	var logger *Logger

	require.NoError(t, logger.Close())
	logger.SetEnabled(true)
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
}

func TestGlobalLogger_NilDefault(t *testing.T) {
	saved := GetLogger()
	SetDefault(nil)
	defer SetDefault(saved)

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	require.NoError(t, Close())
	require.Nil(t, GetLogger())
}

func TestGlobalLogger_WithLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := New(logPath, LevelDebug)
	require.NoError(t, err)

	saved := GetLogger()
	SetDefault(logger)
	defer SetDefault(saved)

	Debug("debug message")
	Info("info message")
	require.Same(t, logger, GetLogger())
	require.NoError(t, Close())

	content := readLog(t, logPath)
	require.Contains(t, content, "debug message")
	require.Contains(t, content, "info message")
}
