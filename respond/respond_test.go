package respond_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/mclancy96/stuntdouble"
	"github.com/mclancy96/stuntdouble/respond"
)

// TestAlways_ReturnsLiteralEvenForFuncs verifies Always stubs a func as a
// plain value instead of treating it as a producer.
func TestAlways_ReturnsLiteralEvenForFuncs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	callback := func(args ...any) any { return "produced" }

	d := stuntdouble.NewDouble(t, "Holder")
	d.Stub("callback", respond.Always(callback))

	value := d.MustInvoke("callback")

	// The func itself comes back, uninvoked.
	fn, ok := value.(func(args ...any) any)
	g.Expect(ok).To(BeTrue(), "expected the func literal back, got %T", value)
	g.Expect(fn()).To(Equal("produced"))
}

// TestFrom_ReceivesArgsPerCall verifies producers get the actual invocation
// arguments on every call.
func TestFrom_ReceivesArgsPerCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d := stuntdouble.NewDouble(t, "Echo")
	d.Stub("echo", respond.From(func(args ...any) (any, error) {
		return args[0], nil
	}))

	g.Expect(d.MustInvoke("echo", "first")).To(Equal("first"))
	g.Expect(d.MustInvoke("echo", "second")).To(Equal("second"))
}

// TestSequence_YieldsValuesThenFails verifies consecutive calls receive
// consecutive values and exhaustion is a producer failure.
func TestSequence_YieldsValuesThenFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d := stuntdouble.New("Feed")
	d.Stub("next", respond.Sequence(1, 2))

	first, err := d.Invoke("next")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(first).To(Equal(1))

	second, err := d.Invoke("next")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(second).To(Equal(2))

	_, err = d.Invoke("next")
	g.Expect(err).To(MatchError(ContainSubstring("sequence exhausted")))
}

// TestError_SurfacesThroughInvoke verifies Error stubs fail with the given
// error, wrapped so errors.Is still matches.
func TestError_SurfacesThroughInvoke(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	boom := errors.New("boom")

	d := stuntdouble.New("Fragile")
	d.Stub("touch", respond.Error(boom))

	_, err := d.Invoke("touch")
	g.Expect(errors.Is(err, boom)).To(BeTrue(), "expected wrapped boom, got %v", err)
}

// TestZero_ReturnsNil verifies Zero resolves to nil without error.
func TestZero_ReturnsNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	d := stuntdouble.New("Quiet")
	d.Stub("log", respond.Zero())

	value, err := d.Invoke("log", "anything")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeNil())
}
