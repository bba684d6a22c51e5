package route

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Filter transforms a bound value before validation.
type Filter interface {
	Filter(value any) any
}

// Validator accepts or rejects a (filtered) bound value.
type Validator interface {
	Valid(value any) bool
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(value any) any

func (f FilterFunc) Filter(value any) any { return f(value) }

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(value any) bool

func (f ValidatorFunc) Valid(value any) bool { return f(value) }

// Factories maps names used in declarations to filter and validator
// constructors. Each name is instantiated once per compiled route.
type Factories struct {
	filters    map[string]func() Filter
	validators map[string]func() Validator
}

// NewFactories returns a registry preloaded with the built-in filters
// (int, bool, lower, upper, trim) and validators (not_empty, int, bool).
func NewFactories() *Factories {
	f := &Factories{
		filters:    make(map[string]func() Filter),
		validators: make(map[string]func() Validator),
	}

	f.RegisterFilter("int", func() Filter { return FilterFunc(toInt) })
	f.RegisterFilter("bool", func() Filter { return FilterFunc(toBool) })
	f.RegisterFilter("lower", func() Filter { return stringFilter(strings.ToLower) })
	f.RegisterFilter("upper", func() Filter { return stringFilter(strings.ToUpper) })
	f.RegisterFilter("trim", func() Filter { return stringFilter(strings.TrimSpace) })

	f.RegisterValidator("not_empty", func() Validator { return ValidatorFunc(notEmpty) })
	f.RegisterValidator("int", func() Validator { return ValidatorFunc(isInt) })
	f.RegisterValidator("bool", func() Validator { return ValidatorFunc(isBool) })

	return f
}

// RegisterFilter adds or replaces a named filter constructor.
func (f *Factories) RegisterFilter(name string, fn func() Filter) {
	f.filters[name] = fn
}

// RegisterValidator adds or replaces a named validator constructor.
func (f *Factories) RegisterValidator(name string, fn func() Validator) {
	f.validators[name] = fn
}

// FilterNames returns the registered filter names, sorted.
func (f *Factories) FilterNames() []string {
	return sortedKeys(f.filters)
}

// ValidatorNames returns the registered validator names, sorted.
func (f *Factories) ValidatorNames() []string {
	return sortedKeys(f.validators)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *Factories) filter(param string, v any) (Filter, error) {
	switch fv := v.(type) {
	case Filter:
		return fv, nil
	case func(any) any:
		return FilterFunc(fv), nil
	case func(string) any:
		return FilterFunc(func(value any) any { return fv(fmt.Sprint(value)) }), nil
	case func(string) string:
		return stringFilter(fv), nil
	case string:
		if ctor, ok := f.filters[fv]; ok {
			return ctor(), nil
		}
	}
	return nil, fmt.Errorf("%w: invalid filter provided for %q; expected a function, a Filter or a registered filter name, received %q",
		ErrInvalidRouteSpec, param, typeName(v))
}

func (f *Factories) validator(param string, v any) (Validator, error) {
	switch vv := v.(type) {
	case Validator:
		return vv, nil
	case func(any) bool:
		return ValidatorFunc(vv), nil
	case func(string) bool:
		return ValidatorFunc(func(value any) bool { return vv(fmt.Sprint(value)) }), nil
	case string:
		if ctor, ok := f.validators[vv]; ok {
			return ctor(), nil
		}
	}
	return nil, fmt.Errorf("%w: invalid validator provided for %q; expected a function, a Validator or a registered validator name, received %q",
		ErrInvalidRouteSpec, param, typeName(v))
}

// typeName names a value for error reports. Strings report themselves.
func typeName(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", v)
}

// stringFilter applies fn to string values and leaves anything else alone.
func stringFilter(fn func(string) string) Filter {
	return FilterFunc(func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	})
}

// toInt converts numeric strings; other values pass through so a validator
// can still reject them.
func toInt(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return value
	}
	return n
}

func toBool(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off", "":
		return false
	}
	return value
}

func notEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	}
	return true
}

func isInt(value any) bool {
	switch v := value.(type) {
	case int, int64:
		return true
	case string:
		_, err := strconv.Atoi(v)
		return err == nil
	}
	return false
}

func isBool(value any) bool {
	switch toBool(value).(type) {
	case bool:
		return true
	}
	return false
}
