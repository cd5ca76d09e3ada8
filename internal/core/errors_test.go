package core_test

import (
	"testing"

	"github.com/mclancy96/stuntdouble/internal/core"
)

// TestUnstubbedMethodError_Message verifies the diagnostic rendering across
// named/unnamed doubles, args, and stubbed-method listings.
func TestUnstubbedMethodError_Message(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  core.UnstubbedMethodError
		want string
	}{
		{
			name: "named double, no args, no stubs",
			err:  core.UnstubbedMethodError{DoubleName: "MovieTicket", Method: "price"},
			want: `double "MovieTicket" received unexpected message "price" (no methods stubbed)`,
		},
		{
			name: "anonymous double",
			err:  core.UnstubbedMethodError{Method: "price"},
			want: `double "(anonymous)" received unexpected message "price" (no methods stubbed)`,
		},
		{
			name: "with stubbed methods",
			err: core.UnstubbedMethodError{
				DoubleName: "Theater",
				Method:     "close",
				Stubbed:    []string{"name", "open"},
			},
			want: `double "Theater" received unexpected message "close" (stubbed methods: name, open)`,
		},
		{
			name: "with args",
			err: core.UnstubbedMethodError{
				DoubleName: "Theater",
				Method:     "book",
				Args:       []any{3},
			},
			want: `double "Theater" received unexpected message "book" with args []interface {}{3} (no methods stubbed)`,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := testCase.err.Error()
			if got != testCase.want {
				t.Errorf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}
