package flare

import "reflect"

// Listener receives payloads emitted under a category it is registered
// for. A non-nil returned error is a listener fault: it never reaches
// the Emit caller and is instead re-emitted under CategoryError.
type Listener interface {
	// Handle processes one emitted payload. The payload is
	// type-erased; listeners should type-assert. It is nil for
	// categories whose contract carries no payload.
	Handle(payload any) error
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(payload any) error

// Handle implements the Listener interface.
func (f ListenerFunc) Handle(payload any) error {
	return f(payload)
}

// WildcardListener receives every emitted payload regardless of
// category, together with the category it was emitted under. Wildcard
// listeners always run after the category's own listeners and exactly
// once per emission.
type WildcardListener interface {
	HandleEvent(category Category, payload any) error
}

// WildcardListenerFunc is a function adapter for WildcardListener.
type WildcardListenerFunc func(category Category, payload any) error

// HandleEvent implements the WildcardListener interface.
func (f WildcardListenerFunc) HandleEvent(category Category, payload any) error {
	return f(category, payload)
}

// identityOf derives the registry key for a listener value. Funcs are
// keyed by code pointer, so registering the same function twice is a
// no-op and Off with the same function matches. Note that closures
// built from the same function literal share a code pointer and are
// treated as the same listener. Comparable non-func values are keyed
// by value equality.
func identityOf(l any) any {
	rv := reflect.ValueOf(l)
	switch rv.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return rv.Pointer()
	default:
		if rv.Type().Comparable() {
			return l
		}
		// Non-comparable value listener. Every registration is
		// distinct; Off cannot match it.
		return new(int)
	}
}
