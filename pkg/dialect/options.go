package dialect

// Options configures rendering. The zero value renders lowercase,
// single-line SQL with plain column names.
type Options struct {
	// AllCaps upper-cases keywords, operators and function names.
	// Identifiers and string literals are never touched.
	AllCaps bool
	// KeywordsCaps upper-cases keywords only.
	KeywordsCaps bool
	// BreakLineOnSections renders each statement section on its own line.
	BreakLineOnSections bool
	// Indent indents continuation sections; only meaningful together with
	// BreakLineOnSections.
	Indent bool

	// absoluteNames qualifies column names with their table name. Unset,
	// the compiler enables it automatically for queries with more than one
	// target table.
	absoluteNames *bool
}

// Option configures a compiler.
type Option func(*Options)

// WithAllCaps upper-cases keywords, operators and function names.
func WithAllCaps() Option {
	return func(o *Options) { o.AllCaps = true }
}

// WithKeywordsCaps upper-cases keywords.
func WithKeywordsCaps() Option {
	return func(o *Options) { o.KeywordsCaps = true }
}

// WithBreakLineOnSections renders each statement section on its own line.
func WithBreakLineOnSections() Option {
	return func(o *Options) { o.BreakLineOnSections = true }
}

// WithIndent indents continuation sections.
func WithIndent() Option {
	return func(o *Options) { o.Indent = true }
}

// WithAbsoluteColumnNames overrides the automatic table-qualification rule.
func WithAbsoluteColumnNames(on bool) Option {
	return func(o *Options) { o.absoluteNames = &on }
}
