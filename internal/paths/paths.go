package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName     = "routeshell"
	configFileName = ".routeshellrc"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "ROUTESHELL_CONFIG"
)

// AppDataDir returns the application data directory for config and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory, where the
// invocation journal lives.
//   - macOS: ~/Library/Application Support/routeshell
//   - Linux: $XDG_DATA_HOME/routeshell or ~/.local/share/routeshell
//   - Windows: %LOCALAPPDATA%\routeshell
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns $ROUTESHELL_CONFIG, or ~/.routeshellrc.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return filepath.Clean(p), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, configFileName), nil
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "routeshell.log")
}

// JournalPath returns the path to the invocation journal database.
func JournalPath() string {
	return filepath.Join(AppLocalDataDir(), "journal.db")
}
