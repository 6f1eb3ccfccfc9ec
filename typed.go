package flare

import (
	"fmt"
	"reflect"
)

// Key binds a category name to its payload type at compile time. The
// category-to-payload contract is a caller-side, closed mapping; a Key
// is one binding from it, carried in the type system so that typed
// listeners and emitters cannot disagree about a payload's shape.
//
// Define keys as package-level values next to the payload types:
//
//	type SessionClosed struct {
//		ID     string
//		Reason string
//	}
//
//	var KeySessionClosed = flare.NewKey[SessionClosed]("session.closed")
type Key[T any] struct {
	category Category
}

// NewKey creates a typed key for a category.
func NewKey[T any](category Category) Key[T] {
	return Key[T]{category: category}
}

// Category returns the category the key binds.
func (k Key[T]) Category() Category {
	return k.category
}

// On registers a typed listener under the key's category. The listener
// is identified by fn, so Off with the same function matches. A
// payload emitted under the category through the untyped API that does
// not match T is a contract violation; it surfaces as an
// ErrPayloadType fault through the normal error routing rather than
// reaching fn.
func On[T any](d *Dispatcher, k Key[T], fn func(payload T) error) *Dispatcher {
	return d.subscribeWithID(k.category, identityOf(fn), typedListener(k, fn), false)
}

// Once registers a typed listener removed after its first invocation.
func Once[T any](d *Dispatcher, k Key[T], fn func(payload T) error) *Dispatcher {
	return d.subscribeWithID(k.category, identityOf(fn), typedListener(k, fn), true)
}

// Off unregisters a typed listener previously registered with On or
// Once. Matching is by the identity of fn.
func Off[T any](d *Dispatcher, k Key[T], fn func(payload T) error) *Dispatcher {
	return d.offID(k.category, identityOf(fn))
}

// Emit emits a payload under the key's category. The payload shape is
// checked at compile time.
func Emit[T any](d *Dispatcher, k Key[T], payload T) {
	d.Emit(k.category, payload)
}

// typedListener adapts a typed function to the untyped Listener shape.
func typedListener[T any](k Key[T], fn func(payload T) error) Listener {
	return ListenerFunc(func(payload any) error {
		v, ok := payload.(T)
		if !ok {
			return fmt.Errorf("%w: category %s expected %s, got %T",
				ErrPayloadType, k.category, reflect.TypeOf((*T)(nil)).Elem(), payload)
		}
		return fn(v)
	})
}
