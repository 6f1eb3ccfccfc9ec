// Package flare provides an in-process publish/subscribe dispatcher.
//
// Callers register interest in named event categories; a producer
// broadcasts payloads to every interested listener. The dispatcher
// decouples producers from consumers within a single process: no
// network, no persistence, no cross-process delivery.
//
// # Basic Usage
//
//	d := flare.New()
//
//	d.OnFunc("session.opened", func(payload any) error {
//	    fmt.Println("opened:", payload)
//	    return nil
//	}).OnFunc("session.closed", func(payload any) error {
//	    fmt.Println("closed:", payload)
//	    return nil
//	})
//
//	d.Emit("session.opened", "sess-42")
//
// # Wildcard Subscriptions
//
// A wildcard listener fires for every emission, after the category's
// own listeners, and receives the category alongside the payload:
//
//	d.OnAnyFunc(func(c flare.Category, payload any) error {
//	    log.Printf("%s: %v", c, payload)
//	    return nil
//	})
//
// # Fault Isolation
//
// A listener that returns an error or panics never breaks the
// broadcast: sibling listeners still run and the Emit caller is never
// affected. The fault is wrapped in an error value and re-emitted
// under flare.CategoryError, so error handling is itself just a
// subscription:
//
//	d.OnFunc(flare.CategoryError, func(payload any) error {
//	    log.Printf("listener fault: %v", payload.(error))
//	    return nil
//	})
//
// A fault raised by a listener during that error emission is dropped
// after the one re-routing hop instead of recursing; see
// WithDropHandler.
//
// # Typed Categories
//
// The category-to-payload contract can be carried in the type system
// with Key:
//
//	type CursorMoved struct{ Line, Col int }
//	var KeyCursorMoved = flare.NewKey[CursorMoved]("cursor.moved")
//
//	flare.On(d, KeyCursorMoved, func(p CursorMoved) error {
//	    fmt.Println(p.Line, p.Col)
//	    return nil
//	})
//	flare.Emit(d, KeyCursorMoved, CursorMoved{Line: 3, Col: 7})
//
// # Delivery Model
//
// Delivery is synchronous on the emitting goroutine, in registration
// order, over a snapshot of the registry taken before any listener
// runs. Listeners may freely add or remove listeners during their own
// invocation without affecting the in-flight emission. There is no
// queuing, no backpressure, and no priority between listeners.
//
// # Subpackages
//
//   - script: Lua listener host binding a Dispatcher into an embedded
//     Lua VM
package flare
