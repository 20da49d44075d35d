package core

import "fmt"

// Table is a table reference: a name, an optional owning-database qualifier
// and an optional declared column schema. Tables are constructed once by the
// caller, immutable thereafter, and shared by reference across every query
// that targets them.
type Table struct {
	name    string
	db      string
	columns map[string]Kind // nil for schemaless tables
}

// TableOption configures a Table at construction.
type TableOption func(*Table)

// WithDB sets the owning-database qualifier.
func WithDB(db string) TableOption {
	return func(t *Table) { t.db = db }
}

// WithColumns declares a fixed column schema. Column lookups on a table
// with a schema fail for undeclared names.
func WithColumns(columns map[string]Kind) TableOption {
	return func(t *Table) {
		if t.columns == nil {
			t.columns = make(map[string]Kind, len(columns))
		}
		for name, kind := range columns {
			t.columns[name] = kind
		}
	}
}

// WithColumn declares a single schema column.
func WithColumn(name string, kind Kind) TableOption {
	return func(t *Table) {
		if t.columns == nil {
			t.columns = make(map[string]Kind)
		}
		t.columns[name] = kind
	}
}

// NewTable constructs a table reference.
func NewTable(name string, opts ...TableOption) *Table {
	t := &Table{name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// DB returns the owning-database qualifier, empty if unset.
func (t *Table) DB() string { return t.db }

// Qualname returns "db.table" when a database qualifier is set, otherwise
// the bare table name.
func (t *Table) Qualname() string {
	if t.db == "" {
		return t.name
	}
	return t.db + "." + t.name
}

// HasSchema reports whether the table declares a fixed column schema.
func (t *Table) HasSchema() bool { return t.columns != nil }

// ColumnKind returns the declared kind for a schema column.
func (t *Table) ColumnKind(name string) (Kind, bool) {
	k, ok := t.columns[name]
	return k, ok
}

// Column returns a column reference bound to this table. For schemaless
// tables the column kind is Any; for tables with a declared schema an
// undeclared name is an error.
func (t *Table) Column(name string) (*Column, error) {
	if t.columns == nil {
		return NewColumn(name, KindAny).Bind(t), nil
	}
	kind, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("table %s has no column %q", t.Qualname(), name)
	}
	return NewColumn(name, kind).Bind(t), nil
}

// C returns a column reference bound to this table, panicking for a name
// missing from a declared schema. It is the key-access sugar for Column.
func (t *Table) C(name string) *Column {
	c, err := t.Column(name)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the t.* wildcard expression for this table.
func (t *Table) All() *F { return TableStar(t) }
