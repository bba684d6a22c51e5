package usage

import "fmt"

// InvalidArgument is returned by built-in handlers when a parameter value is unusable.
func InvalidArgument(name, value string) *Error {
	return &Error{
		Kind:    ErrInvalidArgument,
		Message: fmt.Sprintf("routeshell: invalid value %q for '%s'", value, name),
	}
}

// InvalidConfigKey is returned when a config key is not known.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("routeshell: '%s' is not a valid config key. See 'routeshell config list'.", key),
	}
}
