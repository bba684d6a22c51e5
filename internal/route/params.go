package route

import (
	"fmt"
	"strconv"
	"time"
)

// Params holds the values bound by a successful match plus any input
// tokens the route did not consume. The zero value is empty and usable.
type Params struct {
	values map[string]any
	rest   []string
}

// NewParams builds Params from a value map and leftover tokens.
func NewParams(values map[string]any, rest []string) Params {
	return Params{values: values, rest: rest}
}

// Get returns the bound value for name.
func (p Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Has returns true if name was bound, by input or by default.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// String returns the value of name as a string, or defaultVal if unbound.
func (p Params) String(name, defaultVal string) string {
	v, ok := p.values[name]
	if !ok || v == nil {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns true for a bare flag or a truthy value.
func (p Params) Bool(name string) bool {
	switch v := p.values[name].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

// Int returns the integer value of name, or defaultVal if unbound or invalid.
func (p Params) Int(name string, defaultVal int) int {
	switch v := p.values[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return defaultVal
		}
		return n
	}
	return defaultVal
}

// Date returns the value of name parsed as YYYY-MM-DD, or nil.
func (p Params) Date(name string) *time.Time {
	s := p.String(name, "")
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// Rest returns the input tokens the route left unconsumed, in input order.
func (p Params) Rest() []string {
	return p.rest
}

// Values returns a copy of the bound values.
func (p Params) Values() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Len returns the number of bound values.
func (p Params) Len() int {
	return len(p.values)
}
