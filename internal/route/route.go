package route

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Route is a compiled, named pattern. It is immutable once compiled.
type Route struct {
	name             string
	pattern          string
	segments         []Segment
	constraints      map[string]*regexp.Regexp
	defaults         map[string]any
	aliases          map[string]string
	filters          map[string]Filter
	validators       map[string]Validator
	description      string
	shortDescription string
	options          map[string]string
	handler          any
}

var defaultFactories = NewFactories()

// Compile turns a declaration into a Route. A nil factories uses the
// built-in filters and validators.
func Compile(d Declaration, factories *Factories) (*Route, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("%w: route specification is missing a route name", ErrInvalidRouteSpec)
	}
	if factories == nil {
		factories = defaultFactories
	}

	pattern := PrependCommand(d.Name, d.Pattern(), d.Prepend())
	segments, err := ParsePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", d.Name, err)
	}

	r := &Route{
		name:             d.Name,
		pattern:          pattern,
		segments:         segments,
		constraints:      make(map[string]*regexp.Regexp, len(d.Constraints)),
		defaults:         make(map[string]any, len(d.Defaults)),
		aliases:          make(map[string]string, len(d.Aliases)),
		filters:          make(map[string]Filter, len(d.Filters)),
		validators:       make(map[string]Validator, len(d.Validators)),
		description:      d.Description,
		shortDescription: d.ShortDescription,
		options:          make(map[string]string, len(d.OptionsDescriptions)),
		handler:          d.Handler,
	}

	params := make(map[string]bool)
	for _, seg := range segments {
		if seg.IsParam() {
			params[seg.Name] = true
		}
	}
	known := func(what, name string) error {
		if !params[name] {
			return fmt.Errorf("%w: route %q: %s refers to unknown parameter %q", ErrInvalidRouteSpec, d.Name, what, name)
		}
		return nil
	}

	for alias, canonical := range d.Aliases {
		if err := known("alias", canonical); err != nil {
			return nil, err
		}
		r.aliases[alias] = canonical
	}

	for name, expr := range d.Constraints {
		name = r.canonical(name)
		if err := known("constraint", name); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: route %q: constraint for %q: %v", ErrInvalidRouteSpec, d.Name, name, err)
		}
		r.constraints[name] = re
	}

	for name, value := range d.Defaults {
		name = r.canonical(name)
		if err := known("default", name); err != nil {
			return nil, err
		}
		r.defaults[name] = value
	}

	for name, value := range d.Filters {
		name = r.canonical(name)
		if err := known("filter", name); err != nil {
			return nil, err
		}
		f, err := factories.filter(name, value)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", d.Name, err)
		}
		r.filters[name] = f
	}

	for name, value := range d.Validators {
		name = r.canonical(name)
		if err := known("validator", name); err != nil {
			return nil, err
		}
		v, err := factories.validator(name, value)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", d.Name, err)
		}
		r.validators[name] = v
	}

	for key, text := range d.OptionsDescriptions {
		name := r.canonical(optionName(key))
		if err := known("options description", name); err != nil {
			return nil, err
		}
		r.options[name] = text
	}

	return r, nil
}

// MustCompile is like Compile but panics on error. For tests and
// statically known declarations.
func MustCompile(d Declaration, factories *Factories) *Route {
	r, err := Compile(d, factories)
	if err != nil {
		panic(err)
	}
	return r
}

// optionName strips pattern decoration so options descriptions may be keyed
// by "env", "<env>", "[--force]" or "--target=".
func optionName(key string) string {
	if seg, err := parseToken(key); err == nil && seg.IsParam() {
		return seg.Name
	}
	return key
}

func (r *Route) canonical(name string) string {
	if c, ok := r.aliases[name]; ok {
		return c
	}
	return name
}

// Name returns the registration name.
func (r *Route) Name() string { return r.name }

// Pattern returns the pattern after command prefixing.
func (r *Route) Pattern() string { return r.pattern }

// Description returns the long description.
func (r *Route) Description() string { return r.description }

// ShortDescription returns the one-line description, falling back to the
// first line of the long description.
func (r *Route) ShortDescription() string {
	if r.shortDescription != "" {
		return r.shortDescription
	}
	first, _, _ := strings.Cut(r.description, "\n")
	return first
}

// Handler returns the raw handler reference from the declaration.
func (r *Route) Handler() any { return r.handler }

// Segments returns a copy of the parsed segments.
func (r *Route) Segments() []Segment {
	out := make([]Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Command returns the leading literal of the pattern, the dispatch key.
func (r *Route) Command() string {
	if len(r.segments) == 0 || r.segments[0].Kind != Literal {
		return ""
	}
	return r.segments[0].Text
}

// Literals returns the run of literal segments at the start of the pattern.
func (r *Route) Literals() []string {
	var out []string
	for _, seg := range r.segments {
		if seg.Kind != Literal {
			break
		}
		out = append(out, seg.Text)
	}
	return out
}

// Flags returns the flag names the route declares.
func (r *Route) Flags() []string {
	var out []string
	for _, seg := range r.segments {
		if seg.Kind == Flag {
			out = append(out, seg.Name)
		}
	}
	return out
}

// Aliases returns the alias names that resolve to name, sorted.
func (r *Route) Aliases(name string) []string {
	var out []string
	for alias, canonical := range r.aliases {
		if canonical == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// OptionDescription returns the help text declared for a parameter.
func (r *Route) OptionDescription(name string) (string, bool) {
	text, ok := r.options[name]
	return text, ok
}

// Default returns the declared default for a parameter.
func (r *Route) Default(name string) (any, bool) {
	v, ok := r.defaults[name]
	return v, ok
}

// Match tests tokens (command name included as token 0) against the route.
// Positional segments walk the non-flag tokens in lock-step; flags are found
// anywhere. Leftover tokens never cause a mismatch. A validator rejecting a
// value is reported as no match.
func (r *Route) Match(tokens []string) (Params, bool) {
	values := make(map[string]any)
	consumed := make([]bool, len(tokens))

	var positional, flags []int
	for i, tok := range tokens {
		if isFlagToken(tok) {
			flags = append(flags, i)
		} else {
			positional = append(positional, i)
		}
	}

	next := 0
	for _, seg := range r.segments {
		switch seg.Kind {
		case Literal:
			if next >= len(positional) || tokens[positional[next]] != seg.Text {
				return Params{}, false
			}
			consumed[positional[next]] = true
			next++

		case RequiredParam:
			if next >= len(positional) {
				return Params{}, false
			}
			tok := tokens[positional[next]]
			if !r.satisfies(seg.Name, tok) {
				return Params{}, false
			}
			values[seg.Name] = tok
			consumed[positional[next]] = true
			next++

		case OptionalParam:
			if next < len(positional) && r.satisfies(seg.Name, tokens[positional[next]]) {
				values[seg.Name] = tokens[positional[next]]
				consumed[positional[next]] = true
				next++
				continue
			}
			if def, ok := r.defaults[seg.Name]; ok {
				values[seg.Name] = def
			}
		}
	}

	for _, seg := range r.segments {
		if seg.Kind != Flag {
			continue
		}
		bound := false
		for _, i := range flags {
			if consumed[i] {
				continue
			}
			name, value, hasValue := splitFlag(tokens[i])
			if r.canonical(name) != seg.Name {
				continue
			}
			consumed[i] = true
			bound = true
			if !hasValue {
				values[seg.Name] = true
				break
			}
			if !r.satisfies(seg.Name, value) {
				return Params{}, false
			}
			values[seg.Name] = value
			break
		}
		if !bound {
			if def, ok := r.defaults[seg.Name]; ok {
				values[seg.Name] = def
			}
		}
	}

	for name, value := range values {
		if f, ok := r.filters[name]; ok {
			value = f.Filter(value)
			values[name] = value
		}
		if v, ok := r.validators[name]; ok && !v.Valid(value) {
			return Params{}, false
		}
	}

	var rest []string
	for i, tok := range tokens {
		if !consumed[i] {
			rest = append(rest, tok)
		}
	}

	return NewParams(values, rest), true
}

func (r *Route) satisfies(name, value string) bool {
	re, ok := r.constraints[name]
	return !ok || re.MatchString(value)
}

// isFlagToken reports whether tok is shaped like --name or --name=value.
func isFlagToken(tok string) bool {
	return len(tok) > 2 && strings.HasPrefix(tok, "--")
}

func splitFlag(tok string) (name, value string, hasValue bool) {
	name = strings.TrimPrefix(tok, "--")
	name, value, hasValue = strings.Cut(name, "=")
	return name, value, hasValue
}
