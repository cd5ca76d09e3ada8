// Package core provides the internal implementation of stuntdouble's double
// registry and stub table infrastructure.
package core

import (
	"fmt"
	"sort"
)

// TestReporter is the minimal interface stuntdouble needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Stubs maps method names to responses for installation at creation time.
// Values follow the same rules as Double.Stub.
type Stubs map[string]any

// Double is an opaque fake object. It answers only the method names that have
// been stubbed on it, through Invoke or MustInvoke, and never falls through to
// a real implementation.
//
// A Double belongs to the test goroutine that created it. The stub table is
// deliberately unsynchronized: stubbing and invoking are never concurrent
// within a single double's lifetime.
type Double struct {
	name  string
	t     TestReporter // nil for unattached doubles
	stubs map[string]Responder
}

// New creates an unattached double. Callers use the Invoke error-return API;
// MustInvoke panics on an unattached double.
//
// name is optional and used only in diagnostic messages.
func New(name string) *Double {
	return &Double{
		name:  name,
		stubs: map[string]Responder{},
	}
}

// NewDouble creates a double bound to the given test and registers it with
// the per-test registry, so it is discarded when the test completes. Any
// initial stubs are installed before the double is returned.
func NewDouble(t TestReporter, name string, stubs ...Stubs) *Double {
	return GetOrCreateRegistry(t).NewDouble(name, stubs...)
}

// DisplayName returns the name used in diagnostics, or a placeholder for
// unnamed doubles.
func (d *Double) DisplayName() string {
	if d.name == "" {
		return "(anonymous)"
	}

	return d.name
}

// Invoke resolves a method call against the stub table.
//
// A literal response is returned unchanged, ignoring args. A producer
// response is invoked with args and its result returned; a producer error is
// wrapped and returned. A method with no stub entry fails with
// *UnstubbedMethodError. No argument arity or type validation is performed.
func (d *Double) Invoke(method string, args ...any) (any, error) {
	responder, found := d.stubs[method]
	if !found {
		return nil, &UnstubbedMethodError{
			DoubleName: d.name,
			Method:     method,
			Args:       args,
			Stubbed:    d.Stubbed(),
		}
	}

	value, err := responder.Respond(args)
	if err != nil {
		return nil, fmt.Errorf("double %q: producer for %q: %w", d.DisplayName(), method, err)
	}

	return value, nil
}

// MustInvoke is Invoke with the failure path routed through the bound
// TestReporter's Fatalf, for use directly inside tests and generated typed
// doubles. Calling MustInvoke on an unattached double is a programmer error
// and panics.
func (d *Double) MustInvoke(method string, args ...any) any {
	if d.t == nil {
		panic("stuntdouble: MustInvoke on unattached double " + d.DisplayName() + "; use NewDouble or Invoke")
	}

	d.t.Helper()

	value, err := d.Invoke(method, args...)
	if err != nil {
		d.t.Fatalf("%v", err)

		return nil
	}

	return value
}

// Name returns the double's display name as given at creation. May be empty.
func (d *Double) Name() string {
	return d.name
}

// Stub installs or overwrites the response for method. Re-stubbing the same
// method name replaces the prior response definition; prior invocations are
// unaffected.
//
// response may be a Responder, a producer func of the form
// func(args ...any) any or func(args ...any) (any, error), or any other
// value, which is treated as a literal returned unchanged on every call.
func (d *Double) Stub(method string, response any) {
	d.stubs[method] = AsResponder(response)
}

// Stubbed returns the sorted method names currently stubbed on the double.
func (d *Double) Stubbed() []string {
	names := make([]string, 0, len(d.stubs))
	for name := range d.stubs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// install applies a batch of initial stubs.
func (d *Double) install(stubs []Stubs) {
	for _, batch := range stubs {
		for method, response := range batch {
			d.Stub(method, response)
		}
	}
}
