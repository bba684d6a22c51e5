package config

import (
	"github.com/footprint-tools/routeshell/internal/log"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment overrides: ROUTESHELL_LOCK=true
// overrides the "lock" key.
const EnvPrefix = "ROUTESHELL"

// envOverrides mirrors the config keys. Empty means "not set". Field names
// map to ROUTESHELL_<WORDS>, e.g. LockDir reads ROUTESHELL_LOCK_DIR.
type envOverrides struct {
	Name            string `split_words:"true"`
	Version         string `split_words:"true"`
	ShowVersion     string `split_words:"true"`
	Banner          string `split_words:"true"`
	RoutesFile      string `split_words:"true"`
	Lock            string `split_words:"true"`
	LockDir         string `split_words:"true"`
	Journal         string `split_words:"true"`
	JournalPath     string `split_words:"true"`
	MetricsTextfile string `split_words:"true"`
	Pager           string `split_words:"true"`
	DisplayDate     string `split_words:"true"`
	DisplayTime     string `split_words:"true"`
	EnableLog       string `split_words:"true"`
	LogLevel        string `split_words:"true"`
	LogPath         string `split_words:"true"`
}

func (e envOverrides) values() map[string]string {
	all := map[string]string{
		"name":             e.Name,
		"version":          e.Version,
		"show_version":     e.ShowVersion,
		"banner":           e.Banner,
		"routes_file":      e.RoutesFile,
		"lock":             e.Lock,
		"lock_dir":         e.LockDir,
		"journal":          e.Journal,
		"journal_path":     e.JournalPath,
		"metrics_textfile": e.MetricsTextfile,
		"pager":            e.Pager,
		"display_date":     e.DisplayDate,
		"display_time":     e.DisplayTime,
		"enable_log":       e.EnableLog,
		"log_level":        e.LogLevel,
		"log_path":         e.LogPath,
	}

	set := make(map[string]string)
	for k, v := range all {
		if v != "" {
			set[k] = v
		}
	}
	return set
}

// EnvValues returns the config keys overridden through the environment.
func EnvValues() map[string]string {
	var e envOverrides
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		log.Warn("config: reading environment: %v", err)
		return map[string]string{}
	}
	return e.values()
}
