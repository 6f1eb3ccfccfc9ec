package flare

import "strings"

// Category names a class of event. The category a payload is emitted
// under determines which listeners receive it and, by caller contract,
// what shape the payload has.
//
// Examples: "ping", "buffer.changed", "session.closed"
type Category string

// Reserved category identifiers.
const (
	// Wildcard is a meta-subscription identifier matching every
	// category. It is never itself deliverable: Emit(Wildcard, ...)
	// delivers nothing, and wildcard listeners are registered through
	// OnAny rather than On.
	Wildcard Category = "*"

	// CategoryError is the reserved category for listener faults.
	// Its payload is always an error value.
	CategoryError Category = "error"
)

// String returns the category as a string.
func (c Category) String() string {
	return string(c)
}

// IsWildcard returns true if the category is the reserved wildcard
// identifier.
func (c Category) IsWildcard() bool {
	return c == Wildcard
}

// IsValid returns true if the category can be registered and emitted.
// A valid category:
//   - Is not empty
//   - Is not the wildcard identifier
//   - Contains no whitespace
func (c Category) IsValid() bool {
	s := string(c)
	if s == "" || c == Wildcard {
		return false
	}
	return !strings.ContainsAny(s, " \t\n\r")
}
