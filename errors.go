package flare

import "fmt"

// Sentinel errors for the dispatcher.
var (
	// ErrListenerPanic is matched by errors.Is against faults that
	// originated as a listener panic.
	ErrListenerPanic = fmt.Errorf("listener panicked")

	// ErrPayloadType is matched by errors.Is against faults raised by
	// a typed listener whose payload did not match its key's type.
	ErrPayloadType = fmt.Errorf("payload type mismatch")
)

// ListenerError wraps a non-nil error returned by a listener. It is
// the payload delivered under CategoryError for that fault.
type ListenerError struct {
	// Category is the category the failing listener was invoked for.
	Category Category

	// Err is the error the listener returned.
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return "listener error on " + string(e.Category) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a recovered listener panic as an error. It is the
// payload delivered under CategoryError for that fault.
type PanicError struct {
	// Category is the category the panicking listener was invoked for.
	Category Category

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("listener panic on %s: %v", e.Category, e.Value)
}

// Is allows errors.Is to match PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}

// Unwrap returns the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
