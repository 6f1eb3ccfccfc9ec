package flare_test

import (
	"errors"
	"fmt"

	"github.com/dshills/flare"
)

// Example_basicUsage demonstrates registration and broadcast.
func Example_basicUsage() {
	d := flare.New()

	d.OnFunc("ping", func(payload any) error {
		fmt.Println("first")
		return nil
	}).OnFunc("ping", func(payload any) error {
		fmt.Println("second")
		return nil
	})

	d.Emit("ping", nil)

	// Output:
	// first
	// second
}

// Example_wildcard shows a subscription matching every category.
func Example_wildcard() {
	d := flare.New()

	d.OnAnyFunc(func(c flare.Category, payload any) error {
		fmt.Printf("%s: %v\n", c, payload)
		return nil
	})

	d.Emit("connected", "peer-1")
	d.Emit("disconnected", "peer-1")

	// Output:
	// connected: peer-1
	// disconnected: peer-1
}

// Example_faultIsolation shows a failing listener degrading to an
// error event instead of breaking the broadcast.
func Example_faultIsolation() {
	d := flare.New()

	d.OnFunc("save", func(payload any) error {
		return errors.New("disk full")
	}).OnFunc("save", func(payload any) error {
		fmt.Println("sibling still ran")
		return nil
	})

	d.OnFunc(flare.CategoryError, func(payload any) error {
		fmt.Println("fault:", payload.(error))
		return nil
	})

	d.Emit("save", "document.txt")

	// Output:
	// fault: listener error on save: disk full
	// sibling still ran
}

// ExampleDispatcher_Once demonstrates one-shot registration.
func ExampleDispatcher_Once() {
	d := flare.New()

	d.OnceFunc("boot", func(payload any) error {
		fmt.Println("boot:", payload)
		return nil
	})

	d.Emit("boot", 1)
	d.Emit("boot", 2)
	fmt.Println("remaining:", d.ListenerCount("boot"))

	// Output:
	// boot: 1
	// remaining: 0
}

// ExampleNewKey demonstrates the typed category contract.
func ExampleNewKey() {
	type cursorMoved struct{ Line, Col int }
	key := flare.NewKey[cursorMoved]("cursor.moved")

	d := flare.New()
	flare.On(d, key, func(p cursorMoved) error {
		fmt.Printf("moved to %d:%d\n", p.Line, p.Col)
		return nil
	})

	flare.Emit(d, key, cursorMoved{Line: 12, Col: 4})

	// Output:
	// moved to 12:4
}
