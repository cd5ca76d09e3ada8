// Package respond provides response-definition combinators for stuntdouble
// stubs. This package is designed to be dot-imported alongside the facade:
//
//	import (
//	    "github.com/mclancy96/stuntdouble"
//	    . "github.com/mclancy96/stuntdouble/respond"
//	)
//
//	ticket.Stub("price", Sequence(12.5, 15.0))
package respond

import (
	"errors"
	"fmt"

	"github.com/mclancy96/stuntdouble"
)

// errExhausted is a sentinel error for sequences with no values left.
var errExhausted = errors.New("sequence exhausted")

// producer adapts a func to the stuntdouble.Responder interface.
type producer func(args []any) (any, error)

// Respond invokes the wrapped func with the call's arguments.
func (p producer) Respond(args []any) (any, error) {
	return p(args)
}

// literal is a fixed-value responder.
type literal struct {
	value any
}

// Respond returns the literal value, ignoring args.
func (l literal) Respond([]any) (any, error) {
	return l.value, nil
}

// Always returns a literal responder: value is returned unchanged on every
// call, ignoring arguments. This is the explicit form of stubbing a plain
// value, and the only way to stub a func or Responder as a literal.
func Always(value any) stuntdouble.Responder {
	return literal{value: value}
}

// Error returns a producer that always fails with err, for simulating a
// collaborator failure. The error surfaces through Invoke's error return, or
// fails the test via MustInvoke.
func Error(err error) stuntdouble.Responder {
	return producer(func([]any) (any, error) {
		return nil, err
	})
}

// From returns a producer responder: fn is invoked per call with the actual
// arguments, for responses that are expensive or differ per invocation.
func From(fn func(args ...any) (any, error)) stuntdouble.Responder {
	return producer(func(args []any) (any, error) {
		return fn(args...)
	})
}

// Sequence returns a producer that yields each value in turn on consecutive
// calls. Invoking past the last value is a producer failure.
func Sequence(values ...any) stuntdouble.Responder {
	next := 0

	return producer(func([]any) (any, error) {
		if next >= len(values) {
			return nil, fmt.Errorf("%w after %d calls", errExhausted, len(values))
		}

		value := values[next]
		next++

		return value, nil
	})
}

// Zero returns a literal nil responder, for methods whose result nobody
// inspects.
func Zero() stuntdouble.Responder {
	return literal{value: nil}
}
