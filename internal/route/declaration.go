package route

// Declaration describes one route as it appears in configuration.
//
// Filters and Validators values may be a registered factory name, a Filter or
// Validator, or a plain function; see Compile.
type Declaration struct {
	Name                string            `json:"name" yaml:"name"`
	Route               string            `json:"route,omitempty" yaml:"route,omitempty"`
	PrependCommand      *bool             `json:"prepend_command_to_route,omitempty" yaml:"prepend_command_to_route,omitempty"`
	Constraints         map[string]string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Defaults            map[string]any    `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Aliases             map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Filters             map[string]any    `json:"filters,omitempty" yaml:"filters,omitempty"`
	Validators          map[string]any    `json:"validators,omitempty" yaml:"validators,omitempty"`
	Description         string            `json:"description,omitempty" yaml:"description,omitempty"`
	ShortDescription    string            `json:"short_description,omitempty" yaml:"short_description,omitempty"`
	OptionsDescriptions map[string]string `json:"options_descriptions,omitempty" yaml:"options_descriptions,omitempty"`
	Handler             any               `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// Pattern returns the route pattern, falling back to the name.
func (d Declaration) Pattern() string {
	if d.Route == "" {
		return d.Name
	}
	return d.Route
}

// Prepend reports whether the command name is put in front of the pattern.
func (d Declaration) Prepend() bool {
	return d.PrependCommand == nil || *d.PrependCommand
}

// HasHandler reports whether the declaration carries a handler reference.
func (d Declaration) HasHandler() bool {
	if d.Handler == nil {
		return false
	}
	if s, ok := d.Handler.(string); ok {
		return s != ""
	}
	return true
}
