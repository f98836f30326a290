package goevents

import "fmt"

// eventKind discriminates the three Event variants.
type eventKind int

const (
	kindNext eventKind = iota
	kindError
	kindCompleted
)

// Event is a single message delivered by a stream: a Next value, a terminal
// Error, or a terminal Completed.
// A stream must not deliver further events to a subscription after an Error
// or Completed event.
type Event[T any] struct {
	kind  eventKind
	value T
	err   error
}

// Next returns a Next event carrying value.
func Next[T any](value T) Event[T] {
	return Event[T]{kind: kindNext, value: value}
}

// Error returns a terminal Error event carrying err.
func Error[T any](err error) Event[T] {
	return Event[T]{kind: kindError, err: err}
}

// Completed returns a terminal Completed event.
func Completed[T any]() Event[T] {
	return Event[T]{kind: kindCompleted}
}

// Value returns the value carried by a Next event.
// For Error and Completed events, it returns the zero value.
func (e Event[T]) Value() T {
	return e.value
}

// Err returns the error carried by an Error event, or nil for other events.
func (e Event[T]) Err() error {
	return e.err
}

// IsNext returns true if e is a Next event.
func (e Event[T]) IsNext() bool {
	return e.kind == kindNext
}

// IsError returns true if e is an Error event.
func (e Event[T]) IsError() bool {
	return e.kind == kindError
}

// IsCompleted returns true if e is a Completed event.
func (e Event[T]) IsCompleted() bool {
	return e.kind == kindCompleted
}

// IsTerminal returns true if e is an Error or Completed event.
func (e Event[T]) IsTerminal() bool {
	return e.kind != kindNext
}

// String implements fmt.Stringer.
func (e Event[T]) String() string {
	switch e.kind {
	case kindError:
		return fmt.Sprintf("error(%v)", e.err)

	case kindCompleted:
		return "completed"

	default:
		return fmt.Sprintf("next(%v)", e.value)
	}
}
