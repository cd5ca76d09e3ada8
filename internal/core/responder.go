package core

// Responder generates the response for a stubbed method invocation.
// Implementations are either literal (a fixed value for every call) or
// producers (a function invoked per call with the actual arguments).
//
// A non-nil error from Respond is a producer failure; Invoke wraps and
// returns it, and MustInvoke reports it through the TestReporter.
type Responder interface {
	Respond(args []any) (any, error)
}

// AsResponder converts a stub response value into a Responder.
// Responders pass through unchanged, producer funcs are wrapped, and
// everything else becomes a literal.
func AsResponder(response any) Responder {
	switch typed := response.(type) {
	case Responder:
		return typed
	case func(args ...any) (any, error):
		return producer(typed)
	case func(args ...any) any:
		return producer(func(args ...any) (any, error) {
			return typed(args...), nil
		})
	default:
		return literal{value: response}
	}
}

// Literal returns a Responder that returns value unchanged on every call,
// ignoring arguments. Useful to stub a Responder or a func as a plain value
// rather than have AsResponder treat it as a producer.
func Literal(value any) Responder {
	return literal{value: value}
}

// Producer returns a Responder that invokes fn with the call's arguments on
// every invocation.
func Producer(fn func(args ...any) (any, error)) Responder {
	return producer(fn)
}

// literal is the fixed-value Responder.
type literal struct {
	value any
}

// Respond returns the literal value, ignoring args.
func (r literal) Respond([]any) (any, error) {
	return r.value, nil
}

// producer adapts a func to the Responder interface.
type producer func(args ...any) (any, error)

// Respond invokes the wrapped func with the call's arguments.
func (r producer) Respond(args []any) (any, error) {
	return r(args...)
}
