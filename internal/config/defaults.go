package config

import (
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/paths"
)

// Defaults holds values computed at runtime; they take precedence over the
// static defaults declared in domain.ConfigKeys.
var Defaults = map[string]func() string{
	"journal_path": paths.JournalPath,
	"log_path":     paths.LogFilePath,
}

func defaultValue(key string) (string, bool) {
	if fn, ok := Defaults[key]; ok {
		return fn(), true
	}
	return domain.GetDefaultValue(key)
}

// fileValues returns the parsed config file, or nil when it cannot be read.
func fileValues() map[string]string {
	lines, err := ReadLines()
	if err != nil {
		return nil
	}
	cfg, err := Parse(lines)
	if err != nil {
		return nil
	}
	return cfg
}

// Get returns the value for a config key. The environment wins over the
// config file, which wins over the default.
func Get(key string) (string, bool) {
	if v, ok := EnvValues()[key]; ok {
		return v, true
	}
	if v, ok := fileValues()[key]; ok {
		return v, true
	}
	return defaultValue(key)
}

// GetAll returns every known key with its effective value, plus any extra
// keys present in the config file.
func GetAll() (map[string]string, error) {
	result := make(map[string]string)

	for _, key := range domain.ConfigKeys {
		if v, ok := defaultValue(key.Name); ok {
			result[key.Name] = v
		}
	}
	for k, v := range fileValues() {
		result[k] = v
	}
	for k, v := range EnvValues() {
		result[k] = v
	}

	return result, nil
}
