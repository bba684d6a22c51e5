package app

import "github.com/footprint-tools/routeshell/internal/config"

// Config holds the application identity and execution switches.
type Config struct {
	Name        string
	Version     string // semantic version
	ShowVersion bool   // print "<name>, version <version>" before the first run
	Lock        bool   // one process per command at a time
	LockDir     string // where <command>-cron.lock files live
}

// ConfigFromSettings picks the application fields out of settings.
func ConfigFromSettings(s config.Settings) Config {
	return Config{
		Name:        s.Name,
		Version:     s.Version,
		ShowVersion: s.ShowVersion,
		Lock:        s.Lock,
		LockDir:     s.LockDir,
	}
}
