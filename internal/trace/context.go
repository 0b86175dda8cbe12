package trace

import "context"

// ctxKey is the key type for storing a Tracker in context.
type ctxKey struct{}

// FromContext extracts the Tracker from context.
func FromContext(ctx context.Context) (*Tracker, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(ctxKey{}).(*Tracker)
	return t, ok && t != nil
}

// WithTracker attaches a Tracker to context.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, t)
}
