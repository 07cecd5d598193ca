package famtask

import "context"

type appVersionContextKey struct{}
type screenContextKey struct{}

// WithAppVersion attaches the host app's version string to ctx. It is
// stamped into audit event metadata for every operation under that ctx.
func WithAppVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, appVersionContextKey{}, version)
}

// WithScreen attaches the originating screen name to ctx so audit events
// can be traced back to the surface that triggered them.
func WithScreen(ctx context.Context, screen string) context.Context {
	return context.WithValue(ctx, screenContextKey{}, screen)
}

func appVersionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	v, _ := ctx.Value(appVersionContextKey{}).(string)
	return v
}

func screenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	s, _ := ctx.Value(screenContextKey{}).(string)
	return s
}
