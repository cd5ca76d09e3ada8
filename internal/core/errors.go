package core

import (
	"fmt"
	"strings"
)

// UnstubbedMethodError reports an invocation of a method name with no
// matching stub entry. It is the only error kind the stub table itself
// produces, and it is always surfaced to the caller - never swallowed or
// retried - so that typos and missing setup fail immediately and loudly.
type UnstubbedMethodError struct {
	DoubleName string   // display name given at creation; empty if unnamed
	Method     string   // the attempted method name
	Args       []any    // the arguments of the failed invocation
	Stubbed    []string // sorted method names that were stubbed at the time
}

// Error renders a diagnostic in the shape
//
//	double "MovieTicket" received unexpected message "price" (stubbed methods: title)
//
// with "(anonymous)" standing in for unnamed doubles.
func (e *UnstubbedMethodError) Error() string {
	name := e.DoubleName
	if name == "" {
		name = "(anonymous)"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "double %q received unexpected message %q", name, e.Method)

	if len(e.Args) > 0 {
		fmt.Fprintf(&msg, " with args %#v", e.Args)
	}

	if len(e.Stubbed) > 0 {
		fmt.Fprintf(&msg, " (stubbed methods: %s)", strings.Join(e.Stubbed, ", "))
	} else {
		msg.WriteString(" (no methods stubbed)")
	}

	return msg.String()
}
