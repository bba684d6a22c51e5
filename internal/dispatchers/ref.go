package dispatchers

import (
	"context"
	"fmt"
)

// RefKind tags a HandlerRef.
type RefKind int

const (
	// Invocable refs carry a ready handler.
	Invocable RefKind = iota
	// TypeRef refs name a registered Factory.
	TypeRef
	// LocatorKey refs name an entry in the Locator.
	LocatorKey
)

func (k RefKind) String() string {
	switch k {
	case Invocable:
		return "invocable"
	case TypeRef:
		return "type"
	case LocatorKey:
		return "locator key"
	default:
		return "unknown"
	}
}

// HandlerRef is a deferred pointer to a handler.
type HandlerRef struct {
	kind    RefKind
	handler Handler
	name    string
}

// Invoke refers to a ready handler.
func Invoke(h Handler) HandlerRef {
	return HandlerRef{kind: Invocable, handler: h}
}

// Type refers to a factory registered under name.
func Type(name string) HandlerRef {
	return HandlerRef{kind: TypeRef, name: name}
}

// Key refers to an entry in the dispatcher's Locator.
func Key(name string) HandlerRef {
	return HandlerRef{kind: LocatorKey, name: name}
}

// Kind returns the ref's tag.
func (r HandlerRef) Kind() RefKind { return r.kind }

// Name returns the factory name or locator key; empty for invocables.
func (r HandlerRef) Name() string { return r.name }

func (r HandlerRef) String() string {
	if r.kind == Invocable {
		return fmt.Sprintf("%s(%T)", r.kind, r.handler)
	}
	return fmt.Sprintf("%s(%s)", r.kind, r.name)
}

// asHandler returns v as a Handler when it has an invocable shape.
func asHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case nil:
		return nil, false
	case Handler:
		return h, true
	case func(context.Context, *Request) int:
		return HandlerFunc(h), true
	case func(context.Context, *Request) error:
		return FromErrorFunc(h), true
	case Factory:
		return nil, false
	}
	return nil, false
}
