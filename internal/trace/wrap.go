package trace

// Wrap returns fn instrumented by t: each invocation runs through
// Tracker.Call with the given subject and description.
func Wrap(t *Tracker, subject Subject, description string, fn func() error) func() error {
	return func() error {
		return t.Call(subject, description, fn)
	}
}

// WrapValue is Wrap for functions returning a value.
func WrapValue[T any](t *Tracker, subject Subject, description string, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		var out T
		err := t.Call(subject, description, func() error {
			var err error
			out, err = fn()
			return err
		})
		return out, err
	}
}

// WrapFunc is Wrap for functions taking one argument and returning a value.
// Use a struct for several arguments.
func WrapFunc[A, R any](t *Tracker, subject Subject, description string, fn func(A) (R, error)) func(A) (R, error) {
	return func(arg A) (R, error) {
		var out R
		err := t.Call(subject, description, func() error {
			var err error
			out, err = fn(arg)
			return err
		})
		return out, err
	}
}
