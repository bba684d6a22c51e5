package dispatchers

import (
	"context"
	"errors"
	"fmt"

	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/log"
	"github.com/footprint-tools/routeshell/internal/route"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

var (
	// ErrInvalidHandler reports a Map call that cannot be honoured.
	ErrInvalidHandler = errors.New("invalid command handler")

	// ErrHandlerNotInvocable reports a string handler that resolved to
	// something that cannot be called.
	ErrHandlerNotInvocable = errors.New("handler is not invocable")
)

// HandlerState is the lifecycle of one command entry.
type HandlerState int

const (
	Unmapped HandlerState = iota
	Mapped
	Resolved
)

func (s HandlerState) String() string {
	switch s {
	case Mapped:
		return "mapped"
	case Resolved:
		return "resolved"
	default:
		return "unmapped"
	}
}

type entry struct {
	ref      HandlerRef
	resolved Handler
}

// Dispatcher maps command names to handlers and runs them. Handlers named
// by string are built on first dispatch and reused afterwards. Not safe for
// concurrent use.
type Dispatcher struct {
	commands  map[string]*entry
	locator   Locator
	factories map[string]Factory
	logger    domain.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLocator sets the locator used for string handler references.
func WithLocator(l Locator) Option {
	return func(d *Dispatcher) {
		d.locator = l
	}
}

// WithFactories registers named handler factories.
func WithFactories(factories map[string]Factory) Option {
	return func(d *Dispatcher) {
		for name, f := range factories {
			d.factories[name] = f
		}
	}
}

// WithLogger sets the logger. Defaults to log.NopLogger.
func WithLogger(l domain.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		commands:  make(map[string]*entry),
		factories: make(map[string]Factory),
		logger:    log.NopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterFactory adds a named factory after construction.
func (d *Dispatcher) RegisterFactory(name string, f Factory) {
	d.factories[name] = f
}

// Map associates ref with command. ref may be a HandlerRef, a Handler, a
// handler function, or a string naming a registered factory or locator key.
func (d *Dispatcher) Map(command string, ref any) error {
	if command == "" {
		return fmt.Errorf("%w: command must be a non-empty string", ErrInvalidHandler)
	}

	r, err := d.refOf(ref)
	if err != nil {
		return fmt.Errorf("command %q: %w", command, err)
	}

	d.commands[command] = &entry{ref: r}
	d.logger.Debug("dispatch: mapped %q to %s", command, r)
	return nil
}

// RefOf classifies v without a dispatcher: non-empty strings become
// TypeRef. Map still checks the reference against its factories and locator.
func RefOf(v any) (HandlerRef, error) {
	switch ref := v.(type) {
	case HandlerRef:
		return ref, nil
	case Factory:
		if ref != nil {
			return Invoke(ref()), nil
		}
	case string:
		if ref != "" {
			return Type(ref), nil
		}
	default:
		if h, ok := asHandler(v); ok {
			return Invoke(h), nil
		}
	}
	return HandlerRef{}, fmt.Errorf("%w: must be invocable or a type name, received %s",
		ErrInvalidHandler, describe(v))
}

func (d *Dispatcher) refOf(v any) (HandlerRef, error) {
	switch ref := v.(type) {
	case HandlerRef:
		return d.checkRef(ref)
	case Factory:
		if ref == nil {
			break
		}
		return Invoke(ref()), nil
	case string:
		if _, ok := d.factories[ref]; ok {
			return Type(ref), nil
		}
		if d.locator != nil && d.locator.Has(ref) {
			return Key(ref), nil
		}
	default:
		if h, ok := asHandler(v); ok {
			return Invoke(h), nil
		}
	}
	return HandlerRef{}, fmt.Errorf("%w: must be invocable or a registered type or locator name, received %s",
		ErrInvalidHandler, describe(v))
}

func (d *Dispatcher) checkRef(ref HandlerRef) (HandlerRef, error) {
	switch ref.kind {
	case Invocable:
		if ref.handler != nil {
			return ref, nil
		}
	case TypeRef:
		if _, ok := d.factories[ref.name]; ok {
			return ref, nil
		}
	case LocatorKey:
		if d.locator != nil && d.locator.Has(ref.name) {
			return ref, nil
		}
	}
	return HandlerRef{}, fmt.Errorf("%w: cannot resolve %s", ErrInvalidHandler, ref)
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%T", v)
}

// Has returns true if a handler is mapped for command.
func (d *Dispatcher) Has(command string) bool {
	_, ok := d.commands[command]
	return ok
}

// State reports where command is in its lifecycle.
func (d *Dispatcher) State(command string) HandlerState {
	e, ok := d.commands[command]
	switch {
	case !ok:
		return Unmapped
	case e.resolved != nil:
		return Resolved
	default:
		return Mapped
	}
}

// Commands returns the mapped command names.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the handler for the command named by tokens[0]. An unmapped
// command is reported on console and exits 1 without error. A handler that
// cannot be resolved is returned as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string, reg *route.Registry, console ui.Console) (int, error) {
	var word string
	if len(tokens) > 0 {
		word = tokens[0]
	}

	name, ok := reg.DispatchKey(word)
	if !ok {
		name = word
	}

	e, ok := d.commands[name]
	if !ok {
		d.logger.Warn("dispatch: no handler for %q", name)
		reportUnhandled(console, name)
		return 1, nil
	}

	h, err := d.resolve(name, e)
	if err != nil {
		d.logger.Error("dispatch: %v", err)
		return 1, err
	}

	rt, ok := reg.MatchedRoute()
	if !ok || rt.Name() != name {
		rt, _ = reg.Lookup(name)
	}

	req := &Request{
		Route:   rt,
		Params:  reg.Matched(),
		Args:    tokens,
		Console: console,
	}

	d.logger.Debug("dispatch: running %q", name)
	return h.Handle(ctx, req), nil
}

// resolve returns the entry's handler, building and memoizing it on first use.
// The locator wins over a factory of the same name.
func (d *Dispatcher) resolve(name string, e *entry) (Handler, error) {
	if e.resolved != nil {
		return e.resolved, nil
	}

	var v any
	switch e.ref.kind {
	case Invocable:
		v = e.ref.handler
	case TypeRef, LocatorKey:
		switch {
		case d.locator != nil && d.locator.Has(e.ref.name):
			got, err := d.locator.Get(e.ref.name)
			if err != nil {
				return nil, fmt.Errorf("%w: command %q: %v", ErrHandlerNotInvocable, name, err)
			}
			v = got
		case d.factories[e.ref.name] != nil:
			v = d.factories[e.ref.name]()
		}
	}

	h, ok := asHandler(v)
	if !ok {
		return nil, fmt.Errorf("%w: invalid command handler specified for %q; received %s",
			ErrHandlerNotInvocable, name, describe(v))
	}

	e.resolved = h
	return h, nil
}

func reportUnhandled(console ui.Console, name string) {
	err := usage.UnhandledCommand(name)
	console.WriteLine("")
	console.WriteLine(err.Message, ui.ColorRed)
	console.WriteLine("")
	console.WriteLine(err.Detail)
}
