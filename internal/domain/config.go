package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `config list`
	Hidden      bool   // Hidden keys are not shown in help or config list
}

// ConfigKeys defines all available configuration keys.
// Order determines display order in `config list`.
var ConfigKeys = []ConfigKey{
	// Application
	{
		Name:        "name",
		Default:     "routeshell",
		Description: "Application name shown in the version banner",
		Section:     "Application",
	},
	{
		Name:        "version",
		Default:     "0.1.0",
		Description: "Application version (semantic version)",
		Section:     "Application",
	},
	{
		Name:        "show_version",
		Default:     "true",
		Description: "Print the version banner before each run (true/false)",
		Section:     "Application",
	},
	{
		Name:        "banner",
		Default:     "",
		Description: "Extra banner line printed before command output",
		Section:     "Application",
	},
	{
		Name:        "routes_file",
		Default:     "",
		Description: "Route manifest (.hcl, .yaml, .yml or .json) or directory of manifests",
		Section:     "Application",
	},
	// Execution
	{
		Name:        "lock",
		Default:     "false",
		Description: "Allow only one process per command at a time (true/false)",
		Section:     "Execution",
	},
	{
		Name:        "lock_dir",
		Default:     "data/lock",
		Description: "Directory holding per-command lock files",
		Section:     "Execution",
	},
	{
		Name:        "journal",
		Default:     "true",
		Description: "Record every invocation in the local journal (true/false)",
		Section:     "Execution",
	},
	{
		Name:        "journal_path",
		Default:     "",
		Description: "Journal database path (defaults to the local data directory)",
		Section:     "Execution",
		Hidden:      true,
	},
	{
		Name:        "metrics_textfile",
		Default:     "",
		Description: "Write Prometheus textfile metrics to this path after each run",
		Section:     "Execution",
	},
	// Display
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager command for long output",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "Jan 02",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or Go format",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h, 24h",
		Section:     "Display",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "info",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
	{
		Name:        "log_path",
		Default:     "",
		Description: "Log file path (defaults to the application data directory)",
		Section:     "Logging",
		Hidden:      true,
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Application", "Execution", "Display", "Logging"}
}
