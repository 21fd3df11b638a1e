// Package installer implements the resolve/plan/acquire/stage/commit
// pipeline that turns a project manifest's (product, release, packages)
// triple into a committed, verifiable installation on disk.
package installer

// Options configures a single installation run.
type Options struct {
	// Offline restricts every network-backed step to the local cache.
	Offline bool
	// Force re-stages an installation even if Plan finds an existing one,
	// rather than reusing it by binding alone.
	Force bool
}

// Option mutates an Options value.
type Option func(*Options)

// WithOffline sets Options.Offline.
func WithOffline(offline bool) Option {
	return func(o *Options) { o.Offline = offline }
}

// WithForce sets Options.Force.
func WithForce(force bool) Option {
	return func(o *Options) { o.Force = force }
}

func newOptions(opts ...Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
