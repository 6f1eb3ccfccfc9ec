package flare

import "runtime/debug"

// safeHandle invokes a category listener, converting any fault into
// the error value that will travel under CategoryError. A returned
// error becomes a *ListenerError; a panic is recovered into a
// *PanicError with the stack captured at recovery.
func safeHandle(c Category, payload any, l Listener) (ferr error) {
	defer func() {
		if r := recover(); r != nil {
			ferr = &PanicError{Category: c, Value: r, Stack: debug.Stack()}
		}
	}()

	if err := l.Handle(payload); err != nil {
		return &ListenerError{Category: c, Err: err}
	}
	return nil
}

// safeHandleWild is safeHandle for wildcard listeners.
func safeHandleWild(c Category, payload any, l WildcardListener) (ferr error) {
	defer func() {
		if r := recover(); r != nil {
			ferr = &PanicError{Category: c, Value: r, Stack: debug.Stack()}
		}
	}()

	if err := l.HandleEvent(c, payload); err != nil {
		return &ListenerError{Category: c, Err: err}
	}
	return nil
}
