package core

// As converts a stubbed response value to type T. It exists for generated
// typed doubles, which dispatch through MustInvoke and need to hand back
// statically typed results. A nil response converts to the zero value of T; a
// response of the wrong dynamic type fails the test.
func As[T any](t TestReporter, value any) T {
	t.Helper()

	if value == nil {
		var zero T

		return zero
	}

	typed, ok := value.(T)
	if !ok {
		t.Fatalf("stubbed response %#v is %T, not %T", value, value, *new(T))

		var zero T

		return zero
	}

	return typed
}

// Results unpacks a multi-result stubbed response. Methods with more than one
// result expect the stub value to be a []any whose length matches the result
// count; anything else fails the test.
func Results(t TestReporter, value any, count int) []any {
	t.Helper()

	values, ok := value.([]any)
	if !ok {
		t.Fatalf("stubbed response %#v is %T, not the []any a %d-result method requires", value, value, count)

		return nil
	}

	if len(values) != count {
		t.Fatalf("stubbed response has %d values, method has %d results", len(values), count)

		return nil
	}

	return values
}
