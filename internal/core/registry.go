package core

import "sync"

// GetOrCreateRegistry returns the double registry for the given test,
// creating one if needed. Multiple calls with the same TestReporter return
// the same Registry instance, so every double created within a test is
// tracked together.
//
// If the TestReporter supports Cleanup (like *testing.T), the Registry is
// automatically removed when the test completes, discarding its doubles.
func GetOrCreateRegistry(t TestReporter) *Registry {
	registriesMu.Lock()
	defer registriesMu.Unlock()

	if reg, ok := registries[t]; ok {
		return reg
	}

	reg := &Registry{t: t}
	registries[t] = reg

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registriesMu.Lock()
			delete(registries, t)
			registriesMu.Unlock()
		})
	}

	return reg
}

// Registry tracks the doubles created within a single test. It is the only
// concurrency-safe surface in the package, because parallel subtests may
// create doubles through the same parent TestReporter.
type Registry struct {
	t       TestReporter
	mu      sync.Mutex
	doubles []*Double
}

// Doubles returns a snapshot of the doubles created so far in this test.
func (r *Registry) Doubles() []*Double {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*Double, len(r.doubles))
	copy(snapshot, r.doubles)

	return snapshot
}

// NewDouble creates a double bound to the registry's test, installs any
// initial stubs, and tracks it for the lifetime of the test.
func (r *Registry) NewDouble(name string, stubs ...Stubs) *Double {
	double := New(name)
	double.t = r.t
	double.install(stubs)

	r.mu.Lock()
	r.doubles = append(r.doubles, double)
	r.mu.Unlock()

	return double
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for per-test coordination
	registries = make(map[TestReporter]*Registry)
	//nolint:gochecknoglobals // Mutex for registries
	registriesMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
