package output

// OutputOptions configures how formatters render and enrich findings:
// how much source context to pull per snippet, where the project root is
// (for relative paths), and how chatty the accompanying log output is.
type OutputOptions struct {
	ProjectRoot  string
	ContextLines int
	Verbosity    VerbosityLevel
	Statistics   bool // include a per-rule breakdown in the text report
}

// NewDefaultOptions returns the formatter defaults: three lines of context,
// default verbosity, no statistics section.
func NewDefaultOptions() *OutputOptions {
	return &OutputOptions{
		ContextLines: 3,
		Verbosity:    VerbosityDefault,
	}
}

// ShouldShowStatistics reports whether the text formatter should append its
// per-rule breakdown section.
func (o *OutputOptions) ShouldShowStatistics() bool {
	if o == nil {
		return false
	}
	return o.Statistics || o.Verbosity >= VerbosityVerbose
}

// ShouldShowDebug reports whether debug-level diagnostics (skipped files)
// should be surfaced.
func (o *OutputOptions) ShouldShowDebug() bool {
	if o == nil {
		return false
	}
	return o.Verbosity >= VerbosityDebug
}
