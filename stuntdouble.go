// Package stuntdouble provides test doubles for Go: opaque fake objects with
// per-object stub tables, resolved dynamically by method name.
//
// A double answers only the method names explicitly stubbed on it. Stubs are
// installed at creation time or later, a re-stub replaces the prior response,
// and an unstubbed call always fails with UnstubbedMethodError - a double is
// never backed by a real implementation.
//
// This is the public API entry point. Implementation lives in internal/core.
package stuntdouble

import (
	"github.com/mclancy96/stuntdouble/internal/core"
)

// Double is an opaque fake object with a mutable stub table.
type Double = core.Double

// New creates an unattached double, usable through the Invoke error-return
// API without a test framework.
func New(name string) *Double {
	return core.New(name)
}

// NewDouble creates a double bound to the given test, installs any initial
// stubs, and registers it with the per-test registry so it is discarded when
// the test completes.
func NewDouble(t TestReporter, name string, stubs ...Stubs) *Double {
	return core.NewDouble(t, name, stubs...)
}

// Registry tracks the doubles created within a single test.
type Registry = core.Registry

// GetOrCreateRegistry returns the double registry for the given test,
// creating one if needed. Multiple calls with the same TestReporter return
// the same Registry instance.
func GetOrCreateRegistry(t TestReporter) *Registry {
	return core.GetOrCreateRegistry(t)
}

// Responder generates the response for a stubbed method invocation.
type Responder = core.Responder

// Stubs maps method names to responses for installation at creation time.
type Stubs = core.Stubs

// TestReporter is the minimal interface stuntdouble needs from test frameworks.
type TestReporter = core.TestReporter

// UnstubbedMethodError reports an invocation of a method name with no
// matching stub entry.
type UnstubbedMethodError = core.UnstubbedMethodError

// As converts a stubbed response value to type T, failing the test on a
// dynamic type mismatch. Used by generated typed doubles.
func As[T any](t TestReporter, value any) T {
	return core.As[T](t, value)
}

// Results unpacks a multi-result stubbed response ([]any) for generated
// typed doubles.
func Results(t TestReporter, value any, count int) []any {
	return core.Results(t, value, count)
}
