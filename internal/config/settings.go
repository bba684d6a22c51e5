package config

import (
	"strconv"
	"strings"

	"github.com/footprint-tools/routeshell/internal/domain"
)

// Settings is the typed view of the configuration used to build the
// application.
type Settings struct {
	Name            string
	Version         string
	ShowVersion     bool
	Banner          string
	RoutesFile      string
	Lock            bool
	LockDir         string
	Journal         bool
	JournalPath     string
	MetricsTextfile string
	Pager           string
	DisplayDate     string
	DisplayTime     string
	EnableLog       bool
	LogLevel        string
	LogPath         string
}

// Load reads Settings through p.
func Load(p domain.ConfigProvider) Settings {
	get := func(key string) string {
		v, _ := p.Get(key)
		return v
	}

	return Settings{
		Name:            get("name"),
		Version:         get("version"),
		ShowVersion:     parseBool(get("show_version")),
		Banner:          get("banner"),
		RoutesFile:      get("routes_file"),
		Lock:            parseBool(get("lock")),
		LockDir:         get("lock_dir"),
		Journal:         parseBool(get("journal")),
		JournalPath:     get("journal_path"),
		MetricsTextfile: get("metrics_textfile"),
		Pager:           get("pager"),
		DisplayDate:     get("display_date"),
		DisplayTime:     get("display_time"),
		EnableLog:       parseBool(get("enable_log")),
		LogLevel:        get("log_level"),
		LogPath:         get("log_path"),
	}
}

// DefaultSettings returns Settings built from defaults only.
func DefaultSettings() Settings {
	return Load(defaultsProvider{})
}

type defaultsProvider struct{}

func (defaultsProvider) Get(key string) (string, bool)      { return defaultValue(key) }
func (defaultsProvider) GetAll() (map[string]string, error) { return nil, nil }
func (defaultsProvider) Set(string, string) error           { return nil }
func (defaultsProvider) Unset(string) error                 { return nil }

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// MapProvider is an in-memory domain.ConfigProvider. Keys missing from the
// map fall back to their defaults.
type MapProvider map[string]string

func (m MapProvider) Get(key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	return defaultValue(key)
}

func (m MapProvider) GetAll() (map[string]string, error) {
	out := make(map[string]string)
	for _, key := range domain.ConfigKeys {
		if v, ok := m.Get(key.Name); ok {
			out[key.Name] = v
		}
	}
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

func (m MapProvider) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MapProvider) Unset(key string) error {
	delete(m, key)
	return nil
}

var _ domain.ConfigProvider = MapProvider(nil)
