package route

import (
	"fmt"
	"sort"
)

// Registry holds named routes in lexicographic name order and remembers the
// bindings of the most recent successful match. Not safe for concurrent use.
type Registry struct {
	factories *Factories
	routes    map[string]*Route
	names     []string

	matched      *Route
	matchedValue Params
}

// NewRegistry creates an empty registry. A nil factories uses the built-ins.
func NewRegistry(factories *Factories) *Registry {
	if factories == nil {
		factories = NewFactories()
	}
	return &Registry{
		factories: factories,
		routes:    make(map[string]*Route),
	}
}

// Factories returns the filter and validator factories used by Register.
func (r *Registry) Factories() *Factories {
	return r.factories
}

// Register compiles d and stores it under its name, replacing any route
// already registered under that name.
func (r *Registry) Register(d Declaration) (*Route, error) {
	route, err := Compile(d, r.factories)
	if err != nil {
		return nil, err
	}
	r.Add(route)
	return route, nil
}

// Add stores a compiled route, replacing any route with the same name.
func (r *Registry) Add(route *Route) {
	if _, exists := r.routes[route.Name()]; !exists {
		r.names = append(r.names, route.Name())
		sort.Strings(r.names)
	}
	r.routes[route.Name()] = route
}

// Remove deletes the named route.
func (r *Registry) Remove(name string) error {
	if _, ok := r.routes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	delete(r.routes, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	if r.matched != nil && r.matched.Name() == name {
		r.Reset()
	}
	return nil
}

// Lookup returns the route registered under name.
func (r *Registry) Lookup(name string) (*Route, bool) {
	route, ok := r.routes[name]
	return route, ok
}

// Has returns true if a route is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.routes[name]
	return ok
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	return len(r.routes)
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Routes returns the registered routes in name order.
func (r *Registry) Routes() []*Route {
	out := make([]*Route, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.routes[n])
	}
	return out
}

// Match tries every route in name order and returns the first that matches.
// The bindings are kept until the next Match or Reset.
func (r *Registry) Match(tokens []string) (*Route, bool) {
	for _, name := range r.names {
		route := r.routes[name]
		if params, ok := route.Match(tokens); ok {
			r.matched = route
			r.matchedValue = params
			return route, true
		}
	}
	r.Reset()
	return nil, false
}

// MatchedRoute returns the route chosen by the last successful Match.
func (r *Registry) MatchedRoute() (*Route, bool) {
	return r.matched, r.matched != nil
}

// Matched returns the bindings of the last successful Match.
func (r *Registry) Matched() Params {
	return r.matchedValue
}

// MatchedParam returns true if the last match bound name.
func (r *Registry) MatchedParam(name string) bool {
	return r.matched != nil && r.matchedValue.Has(name)
}

// Param returns the value bound to name by the last match, or defaultVal.
func (r *Registry) Param(name string, defaultVal any) any {
	if !r.MatchedParam(name) {
		return defaultVal
	}
	v, _ := r.matchedValue.Get(name)
	return v
}

// Reset forgets the last match.
func (r *Registry) Reset() {
	r.matched = nil
	r.matchedValue = Params{}
}

// DispatchKey finds the route whose pattern starts with the literal word and
// returns its name. When several routes share the word, the one chosen by the
// last Match wins, then the first in name order.
func (r *Registry) DispatchKey(word string) (string, bool) {
	if r.matched != nil && r.matched.Command() == word {
		return r.matched.Name(), true
	}
	for _, name := range r.names {
		if r.routes[name].Command() == word {
			return name, true
		}
	}
	return "", false
}
