package profile

// Stopper stops a running profiler. Stop is safe to call on the value
// returned by any [Profiler.Start], including the no-op profiler.
type Stopper interface{ Stop() }

// Profiler describes a single profiling session.
type Profiler struct {
	// Mode selects the profile kind. Empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses the library default.
	Path string
	// Quiet suppresses the start and stop messages of the profiling library.
	Quiet bool
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler with the given options applied.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiler mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the profiler output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet sets whether the profiler prints status messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling and returns a [Stopper] that ends it.
//
// If the pprof build tag is unset, or Mode is empty or unknown, Start returns
// a no-op Stopper.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
