// Package dialect provides SQL dialect vocabularies and the compiler that
// renders queries through them.
//
// A Dialect is three independent vocabularies (keywords, operators, function
// names) plus rendering symbols. Concrete dialects are registered from
// pkg/dialects/*/ packages; the traversal logic in the compiler never
// changes per dialect, only the vocabulary it consults.
package dialect

// Keywords is the keyword vocabulary of a dialect.
type Keywords struct {
	Select   string
	Distinct string
	From     string
	As       string
	Where    string
	Star     string

	GroupBy string
	Having  string
	OrderBy string
	Limit   string
	Offset  string

	Delete string

	Join      string
	LeftJoin  string
	RightJoin string
	InnerJoin string
	OuterJoin string
	CrossJoin string
	Using     string
	On        string

	True  string
	False string
	Null  string
	Asc   string
	Desc  string
}

// Operators is the operator vocabulary of a dialect.
type Operators struct {
	Add                string
	Subtract           string
	Multiply           string
	Divide             string
	Modulo             string
	And                string
	Or                 string
	Xor                string
	Not                string
	Equal              string
	NotEqual           string
	LessThan           string
	LessThanOrEqual    string
	GreaterThan        string
	GreaterThanOrEqual string
	In                 string
}

// Names is the function-name vocabulary of a dialect.
type Names struct {
	Max  string
	Min  string
	Sum  string
	Like string
}

// Symbols holds the rendering symbols of a dialect.
type Symbols struct {
	ListSeparator string
	QueryEnd      string
	StringQuote   string
}

// Dialect is a named set of vocabularies. Instances are constructed once in
// a dialects package init and are read-only afterwards, so a single Dialect
// may be shared across goroutines.
type Dialect struct {
	Name      string
	Keywords  Keywords
	Operators Operators
	Names     Names
	Symbols   Symbols
}

// Clone returns a copy of the dialect under a new name, for dialects that
// extend a base vocabulary with a handful of overrides.
func (d *Dialect) Clone(name string) *Dialect {
	copied := *d
	copied.Name = name
	return &copied
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string { return d.Name }
